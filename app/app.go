package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/pakincht-bit/SmashX-2.0/bot"
	"github.com/pakincht-bit/SmashX-2.0/cache"
	"github.com/pakincht-bit/SmashX-2.0/config"
	"github.com/pakincht-bit/SmashX-2.0/constants"
	"github.com/pakincht-bit/SmashX-2.0/live"
	"github.com/pakincht-bit/SmashX-2.0/models"
	"github.com/pakincht-bit/SmashX-2.0/rating"
	"github.com/pakincht-bit/SmashX-2.0/scheduler"
	"github.com/pakincht-bit/SmashX-2.0/sheets"
	"github.com/pakincht-bit/SmashX-2.0/storage"
	"github.com/pakincht-bit/SmashX-2.0/telemetry"
	"github.com/pakincht-bit/SmashX-2.0/utils"
)

type Application struct {
	config         *config.Config
	session        *discordgo.Session
	storage        *storage.FirestoreStorage
	profileCache   *cache.ProfileCache
	tierManager    *models.TierManager
	metricsClient  *telemetry.MetricsClient
	coordinator    *live.Coordinator
	boardManager   *bot.BoardManager
	commandHandler *bot.CommandHandler
	scheduler      *scheduler.Scheduler
	sheetsClient   *sheets.SheetsClient
	cacheCleanup   context.CancelFunc
	feedCancel     context.CancelFunc
}

func New() (*Application, error) {
	app := &Application{}

	if err := app.loadConfig(); err != nil {
		return nil, err
	}

	if err := app.initializeDependencies(); err != nil {
		return nil, err
	}

	if err := app.initializeDiscord(); err != nil {
		return nil, err
	}

	app.setupHandlers()
	app.initializeScheduler()

	return app, nil
}

func (app *Application) loadConfig() error {
	app.config = config.Load()
	if err := app.config.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

func (app *Application) initializeDependencies() error {
	store, err := storage.NewStorage()
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	app.storage = store

	app.profileCache = cache.NewProfileCache()
	app.cacheCleanup = app.profileCache.StartCleanupWorker(constants.CacheCleanupInterval)

	if app.config.Telemetry.Enabled {
		app.metricsClient = telemetry.NewMetricsClient(app.config.Telemetry.ProjectID)
	}

	if app.config.Features.EnableBillExport {
		client, err := sheets.NewSheetsClient()
		if err != nil {
			utils.Warn("Bill export disabled: %v", err)
		} else {
			app.sheetsClient = client
		}
	}

	return nil
}

func (app *Application) initializeDiscord() error {
	session, err := discordgo.New("Bot " + app.config.Discord.Token)
	if err != nil {
		return fmt.Errorf("디스코드 세션 생성 실패: %w", err)
	}

	session.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentsMessageContent | discordgo.IntentsGuilds | discordgo.IntentsDirectMessages
	app.session = session
	return nil
}

func (app *Application) setupHandlers() {
	// 글로벌 TierManager 한 번만 생성
	app.tierManager = models.GetTierManager()

	announcer := bot.NewAnnouncer(app.session, app.config.Discord.ChannelID)
	ratingEngine := rating.NewEngine(app.storage, app.tierManager)

	app.coordinator = live.NewCoordinator(app.storage, ratingEngine, nil, announcer, app.metricsClient)
	app.coordinator.OnRatingsApplied = func(playerIDs []string, updated []models.Participant) {
		// 옛 레이팅이 캐시에 남아 있으면 보드가 그대로 보여주므로 즉시 갱신합니다
		for _, id := range playerIDs {
			app.profileCache.Invalidate(id)
		}
		app.profileCache.SetAll(updated)
	}
	app.boardManager = bot.NewBoardManager(app.coordinator, app.storage, app.profileCache, app.tierManager, nil)

	deps := bot.NewCommandDependencies(app.coordinator, app.storage, app.boardManager, app.tierManager, app.metricsClient)
	deps.OnBillFinalized = func(sess *models.Session, bill *models.FinalBill) {
		if app.sheetsClient == nil {
			return
		}
		if err := app.sheetsClient.ExportBill(sess, bill); err != nil {
			utils.Error("Failed to export bill: %v", err)
			return
		}
		announcer.NotifyInfo(constants.MsgBillExported)
	}
	app.commandHandler = bot.NewCommandHandler(deps)

	app.session.AddHandler(app.commandHandler.HandleMessage)
	app.session.AddHandler(app.handleReady)
}

func (app *Application) initializeScheduler() {
	app.scheduler = scheduler.NewScheduler(app.storage, nil)
}

func (app *Application) Start() error {
	if err := app.session.Open(); err != nil {
		return fmt.Errorf("웹소켓 연결 실패: %w", err)
	}

	if app.config.Session.SessionID != "" {
		if err := app.loadSession(app.config.Session.SessionID); err != nil {
			return err
		}
	} else {
		utils.Warn("SESSION_ID가 설정되지 않았습니다. 세션을 불러올 때까지 대기합니다.")
	}

	if app.config.Features.EnableAutoEnd {
		app.scheduler.StartAutoEndSweep()
	}

	app.printStartupMessage()
	return nil
}

// loadSession 세션을 불러오고 변경 피드 구독을 시작합니다
func (app *Application) loadSession(sessionID string) error {
	if err := app.coordinator.Load(context.Background(), sessionID); err != nil {
		return fmt.Errorf("failed to load session %s: %w", sessionID, err)
	}

	feedCtx, cancel := context.WithCancel(context.Background())
	app.feedCancel = cancel
	go func() {
		if err := app.coordinator.Run(feedCtx, app.storage); err != nil && feedCtx.Err() == nil {
			utils.Error("Change feed stopped unexpectedly: %v", err)
		}
	}()

	return nil
}

// StorageCheck 헬스 서버에 넘기는 저장소 연결 확인 함수입니다.
func (app *Application) StorageCheck() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return app.storage.HealthCheck(ctx)
}

func (app *Application) printStartupMessage() {
	utils.Info("SmashX Arena Bot v2.0.0")
	utils.Info("📋 사용 가능한 명령어: !help")
	if app.config.Features.EnableAutoEnd {
		utils.Info("⏰ 유예 기간(%v)을 넘긴 세션은 자동 종료됩니다.", constants.AutoEndGracePeriod)
	}
}

func (app *Application) Run() error {
	if err := app.Start(); err != nil {
		return err
	}

	// 종료 신호 대기
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	return app.Stop()
}

func (app *Application) handleReady(s *discordgo.Session, event *discordgo.Ready) {
	utils.Info("Discord bot connected successfully as %s#%s", event.User.Username, event.User.Discriminator)
	utils.Info("Bot is serving %d guilds", len(event.Guilds))

	// 봇 상태 설정
	err := s.UpdateGameStatus(0, constants.BotStatusMessage)
	if err != nil {
		utils.Warn("Failed to set bot status: %v", err)
	}
}

func (app *Application) Stop() error {
	utils.Info("🔄 봇을 종료하는 중...")

	if app.feedCancel != nil {
		app.feedCancel()
	}

	if app.scheduler != nil {
		app.scheduler.Stop()
	}

	if app.cacheCleanup != nil {
		app.cacheCleanup()
	}

	if app.metricsClient != nil {
		app.metricsClient.Close()
	}

	if app.storage != nil {
		app.storage.Close()
	}

	if app.session != nil {
		app.session.Close()
	}

	utils.Info("봇이 정상적으로 종료되었습니다.")
	return nil
}
