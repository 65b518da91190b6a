package worker

import (
	"context"
	"time"

	"github.com/romashorodok/content-site/backend/internal/model"
	"github.com/romashorodok/content-site/backend/internal/service"
	"github.com/romashorodok/content-site/pkg/envutils"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const CACHE_WARM_JOB_NAME = "cache-warm"

type CacheWarmerConfig struct {
	// Cron spec with a seconds field. Empty disables warming.
	Schedule string
	Timeout  time.Duration
	// Run the job once in the background as soon as the app starts.
	OnStart bool
}

func NewCacheWarmerConfig() *CacheWarmerConfig {
	return &CacheWarmerConfig{
		Schedule: envutils.Env("CACHE_WARM_SCHEDULE", "0 */5 * * * *"),
		Timeout:  envutils.EnvDuration("CACHE_WARM_TIMEOUT", time.Minute),
		OnStart:  envutils.EnvBool("CACHE_WARM_ON_START", true),
	}
}

type cacheWarmJob struct {
	posts       *service.PostService
	directories *service.DirectoryService
	faq         *service.FAQService
}

func (j *cacheWarmJob) Name() string { return CACHE_WARM_JOB_NAME }

// Run reloads the directories, the FAQ and the first page of every post list in parallel.
func (j *cacheWarmJob) Run(ctx context.Context) error {
	group, ctx := errgroup.WithContext(ctx)

	for _, kind := range model.DirectoryKinds {
		group.Go(func() error {
			return j.directories.Refresh(ctx, kind)
		})
	}
	group.Go(func() error {
		return j.faq.Refresh(ctx)
	})
	for _, contentType := range []model.ContentType{model.CONTENT_TYPE_BLOG, model.CONTENT_TYPE_NEWSROOM} {
		group.Go(func() error {
			_, err := j.posts.RefreshPosts(ctx, service.GetPostsParams{Type: contentType})
			return err
		})
	}
	return group.Wait()
}

type StartCacheWarmerParams struct {
	fx.In
	Lifecycle fx.Lifecycle

	Config      *CacheWarmerConfig
	Posts       *service.PostService
	Directories *service.DirectoryService
	FAQ         *service.FAQService
	Logger      *zap.Logger
}

func StartCacheWarmer(params StartCacheWarmerParams) error {
	if params.Config.Schedule == "" {
		params.Logger.Info("cache warmer disabled")
		return nil
	}

	scheduler := NewScheduler(params.Logger, params.Config.Timeout)
	job := &cacheWarmJob{
		posts:       params.Posts,
		directories: params.Directories,
		faq:         params.FAQ,
	}
	if err := scheduler.AddJob(params.Config.Schedule, job); err != nil {
		return err
	}

	warmed := make(chan struct{})
	params.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			scheduler.Start()
			if !params.Config.OnStart {
				close(warmed)
				return nil
			}
			go func() {
				defer close(warmed)
				_ = scheduler.RunJobNow(CACHE_WARM_JOB_NAME)
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			select {
			case <-warmed:
			case <-ctx.Done():
			}
			scheduler.Stop()
			return nil
		},
	})
	return nil
}
