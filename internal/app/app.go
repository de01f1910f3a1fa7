// internal/app/app.go

package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"space/api"
	"space/internal/appstate"
	"space/internal/bubble"
	"space/internal/config"
	"space/internal/db"
	"space/internal/events"
	"space/internal/handlers"
	"space/internal/logger"
	"space/internal/metrics"
	"space/internal/monitor"
)

type App struct {
	cfg config.Config

	db          *gorm.DB
	eventBus    *events.EventBus
	board       *appstate.Board
	prefs       *appstate.Preferences
	toneBubbles *bubble.Synchronizer
	metrics     *metrics.Metrics
	monitor     *monitor.Monitor
	router      *gin.Engine
	server      *http.Server
	serverErr   chan error
}

func NewApp(cfg config.Config) *App {
	return &App{cfg: cfg}
}

// Initialize 打开数据库、加载状态并组装路由
func (a *App) Initialize() error {
	level, err := logger.ParseLevel(a.cfg.LogLevel)
	if err != nil {
		return err
	}
	logger.SetLevel(level)

	a.db, err = db.Open(a.cfg.DBPath)
	if err != nil {
		return err
	}

	a.eventBus = events.NewEventBus()
	a.metrics = metrics.New()
	a.metrics.Attach(a.eventBus)

	a.board = appstate.NewBoard(db.NewApplianceRepository(a.db), a.eventBus)
	if err := a.board.Load(); err != nil {
		return err
	}

	a.monitor = monitor.NewMonitor(a.board, a.cfg.MonitorInterval)
	if err := a.metrics.Register(a.monitor.Collector()); err != nil {
		return fmt.Errorf("register monitor: %w", err)
	}

	rng := bubble.NewLockedSource(time.Now().UnixNano())
	a.toneBubbles = bubble.NewSynchronizer("tone", bubble.ToneMargins, rng,
		bubble.WithDelay(a.cfg.ReshuffleDelay),
		bubble.WithObserver(func(screen, kind string) {
			a.eventBus.Publish(events.New(events.EventLayoutChanged, events.LayoutEventData{Screen: screen, Kind: kind}))
		}),
	)

	// 语气页布局随偏好同步更新
	a.prefs = appstate.NewPreferences(db.NewPreferenceRepository(a.db), a.eventBus)
	a.prefs.OnTonesChanged(a.toneBubbles.SetLabels)
	if err := a.prefs.Load(); err != nil {
		return err
	}

	a.router = api.SetupRouter(api.Handlers{
		Appliance:  handlers.NewApplianceHandler(a.board),
		Preference: handlers.NewPreferenceHandler(a.prefs),
		Bubble:     handlers.NewBubbleHandler(rng, a.toneBubbles, a.eventBus),
		Monitor:    handlers.NewMonitorHandler(a.monitor),
		Metrics:    a.metrics.Handler(),
	}, a.cfg.CORSOrigin)

	a.eventBus.Publish(events.New(events.EventSystemStartup, nil))
	logger.Info("Initialized with database %s", a.cfg.DBPath)
	return nil
}

// Router 已组装的路由，Initialize 之后可用
func (a *App) Router() *gin.Engine {
	return a.router
}

// Board 家电状态
func (a *App) Board() *appstate.Board {
	return a.board
}

// Preferences 用户偏好
func (a *App) Preferences() *appstate.Preferences {
	return a.prefs
}

// ToneBubbles 语气页气泡布局
func (a *App) ToneBubbles() *bubble.Synchronizer {
	return a.toneBubbles
}

// Start 在后台启动 HTTP 服务
func (a *App) Start() error {
	if a.router == nil {
		return errors.New("app not initialized")
	}
	a.monitor.Start()

	a.server = &http.Server{
		Addr:    a.cfg.Addr(),
		Handler: a.router,
	}
	a.serverErr = make(chan error, 1)

	go func() {
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error: %v", err)
			a.serverErr <- err
		}
		close(a.serverErr)
	}()

	logger.Info("Server started on %s", a.cfg.Addr())
	return nil
}

// Errors 服务异常退出时收到错误
func (a *App) Errors() <-chan error {
	return a.serverErr
}

// Stop 关闭服务并释放资源
func (a *App) Stop(ctx context.Context) error {
	var errs []error
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown server: %w", err))
		}
	}
	if a.monitor != nil {
		a.monitor.Stop()
	}
	if a.toneBubbles != nil {
		a.toneBubbles.Close()
	}
	if a.eventBus != nil {
		if a.metrics != nil {
			a.metrics.Detach(a.eventBus)
		}
		a.eventBus.Publish(events.New(events.EventSystemShutdown, nil))
		a.eventBus.Close()

		// 等待事件处理完或超时
		done := make(chan struct{})
		go func() {
			a.eventBus.Wait()
			close(done)
		}()
		select {
		case <-done:
		case <-ctx.Done():
			errs = append(errs, errors.New("shutdown timeout"))
		}
	}
	if a.db != nil {
		if err := db.Close(a.db); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return err
	}
	logger.Info("Application stopped gracefully")
	return nil
}
