package region

import (
	"time"

	"github.com/zoeyai/regionfind/internal/logger"
	"github.com/zoeyai/regionfind/pkg/config"
	"github.com/zoeyai/regionfind/pkg/diag"
	"github.com/zoeyai/regionfind/pkg/input"
	"github.com/zoeyai/regionfind/pkg/platform"
	"github.com/zoeyai/regionfind/pkg/screen"
	"github.com/zoeyai/regionfind/pkg/search"
	"github.com/zoeyai/regionfind/pkg/vision/cv"
)

// Env 区域共享的运行环境，进程启动时创建一次
type Env struct {
	Settings  *config.Settings
	Screens   screen.Directory
	Frames    screen.FrameProvider
	Windows   screen.WindowLocator
	Actor     *input.Actor
	Engine    *search.Engine
	Snapshots *diag.Snapshotter
	Log       *logger.Logger

	sleep func(time.Duration)
}

// EnvOption 环境选项
type EnvOption func(*envOptions)

type envOptions struct {
	matcher search.Matcher
	windows screen.WindowLocator
	sleep   func(time.Duration)
	log     *logger.Logger
}

// WithMatcher 替换模板匹配实现，默认使用 OpenCV
func WithMatcher(m search.Matcher) EnvOption {
	return func(o *envOptions) {
		o.matcher = m
	}
}

// WithWindows 替换窗口查找实现
func WithWindows(w screen.WindowLocator) EnvOption {
	return func(o *envOptions) {
		o.windows = w
	}
}

// WithSleep 替换休眠函数，轮询、输入延时和 Wait 都使用它
func WithSleep(sleep func(time.Duration)) EnvOption {
	return func(o *envOptions) {
		o.sleep = sleep
	}
}

// WithLogger 设置日志，各组件使用其子日志
func WithLogger(l *logger.Logger) EnvOption {
	return func(o *envOptions) {
		o.log = l
	}
}

// NewEnv 按配置和平台能力创建环境
func NewEnv(s *config.Settings, b *platform.Backend, opts ...EnvOption) (*Env, error) {
	if s == nil {
		s = config.Default()
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	o := &envOptions{
		windows: screen.SystemWindows{},
		sleep:   time.Sleep,
		log:     logger.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.matcher == nil {
		o.matcher = cv.NewMatcher()
	}

	return &Env{
		Settings: s,
		Screens:  b.Screens,
		Frames:   b.Frames,
		Windows:  o.windows,
		Actor:    input.NewActor(b.Input).WithSleep(o.sleep).WithLogger(o.log.Named("input")),
		Engine: search.New(o.matcher,
			search.WithInterval(s.PollIntervalDuration()),
			search.WithSleep(o.sleep),
			search.WithLogger(o.log.Named("search")),
		),
		Snapshots: diag.NewSnapshotter(s),
		Log:       o.log.Named("region"),
		sleep:     o.sleep,
	}, nil
}
