package bootstrap

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	plugininadapter "tenk/internal/modules/plugin/adapter/in"
	pluginoutadapter "tenk/internal/modules/plugin/adapter/out"
	pluginservice "tenk/internal/modules/plugin/service"
	pluginusecase "tenk/internal/modules/plugin/usecase"
	skillinadapter "tenk/internal/modules/skill/adapter/in"
	skilloutadapter "tenk/internal/modules/skill/adapter/out"
	skillout "tenk/internal/modules/skill/port/out"
	skillservice "tenk/internal/modules/skill/service"
	skillusecase "tenk/internal/modules/skill/usecase"
	statsinadapter "tenk/internal/modules/stats/adapter/in"
	statsoutadapter "tenk/internal/modules/stats/adapter/out"
	statsservice "tenk/internal/modules/stats/service"
	statsusecase "tenk/internal/modules/stats/usecase"
	trackerinadapter "tenk/internal/modules/tracker/adapter/in"
	trackeroutadapter "tenk/internal/modules/tracker/adapter/out"
	trackerout "tenk/internal/modules/tracker/port/out"
	trackerservice "tenk/internal/modules/tracker/service"
	trackerusecase "tenk/internal/modules/tracker/usecase"
	"tenk/internal/platform/clock"
	"tenk/internal/platform/config"
	"tenk/internal/platform/id"
	"tenk/internal/platform/logging"
	uiapp "tenk/internal/ui/app"
)

type App struct {
	SkillCLI   skillinadapter.CLIHandler
	TrackerCLI trackerinadapter.CLIHandler
	StatsCLI   statsinadapter.CLIHandler
	PluginCLI  plugininadapter.CLIHandler
	Logger     *zap.Logger
}

// sessionStores is the pair of roles the session projection serves: the
// tracker's store and the skill module's usage aggregator.
type sessionStores interface {
	trackerout.SessionStore
	skillout.SessionUsage
}

func New(cfg config.Config) (*App, error) {
	clk := clock.SystemClock{}
	ids := id.UUID{}
	logger := logging.New(cfg.DataDir)

	skillStore, sessionStore := openStores(cfg, logger)

	activeStore := trackeroutadapter.NewFileActiveStore(cfg.ActivePath())

	skillSvc := skillservice.NewSkillService(clk, ids, skillStore)
	skillUC := skillusecase.NewInteractor(skillSvc, sessionStore, activeStore)

	var journal trackerout.JournalStore
	if cfg.Journal {
		journal = trackeroutadapter.NewJournalStore(cfg.JournalDir())
	}
	trackerSvc := trackerservice.NewTrackingService(clk, ids)
	trackerUC := trackerusecase.NewInteractor(trackerSvc, skillUC, sessionStore, activeStore, journal, logger)

	statsSvc := statsservice.NewStatsService(clk, cfg.WeekStartDay())
	statsUC := statsusecase.NewInteractor(
		statsSvc,
		statsoutadapter.NewSkillSourceAdapter(skillUC),
		statsoutadapter.NewSessionSourceAdapter(trackerUC),
	)

	pluginUC := pluginusecase.NewInteractor(pluginservice.NewPluginService(
		pluginoutadapter.NewFileManifestStore(cfg.DataDir),
		pluginoutadapter.NewGRPCHost(),
	))

	return &App{
		SkillCLI:   skillinadapter.NewCLIHandler(skillUC),
		TrackerCLI: trackerinadapter.NewCLIHandler(trackerUC),
		StatsCLI:   statsinadapter.NewCLIHandler(statsUC),
		PluginCLI:  plugininadapter.NewCLIHandler(pluginUC),
		Logger:     logger,
	}, nil
}

// openStores wires the sqlite projections, degrading to in-memory stores
// when the database cannot be opened. The app keeps working without
// persistence in that case.
func openStores(cfg config.Config, logger *zap.Logger) (skillout.SkillStore, sessionStores) {
	skillStore, err := skilloutadapter.NewSQLiteSkillStore(cfg.DBPath())
	if err != nil {
		logger.Warn("sqlite unavailable, using in-memory stores",
			zap.String("db_path", cfg.DBPath()),
			zap.Error(err),
		)
		return skilloutadapter.NewMemorySkillStore(), trackeroutadapter.NewMemorySessionStore()
	}
	sessionStore, err := trackeroutadapter.NewSQLiteSessionStore(cfg.DBPath())
	if err != nil {
		logger.Warn("sqlite unavailable, using in-memory stores",
			zap.String("db_path", cfg.DBPath()),
			zap.Error(err),
		)
		return skilloutadapter.NewMemorySkillStore(), trackeroutadapter.NewMemorySessionStore()
	}
	return skillStore, sessionStore
}

func RunTUI(dataDir string, app *App) error {
	model := uiapp.NewModel(dataDir, app.SkillCLI, app.TrackerCLI, app.StatsCLI, app.PluginCLI)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
