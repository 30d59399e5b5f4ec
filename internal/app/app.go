// Package app 负责组装应用依赖
package app

import (
	"time"

	"lecture-deck-api/internal/application/deck"
	"lecture-deck-api/internal/application/lecture"
	"lecture-deck-api/internal/application/segmentation"
	"lecture-deck-api/internal/config"
	"lecture-deck-api/internal/infrastructure/imagehost"
	"lecture-deck-api/internal/infrastructure/markup"
	"lecture-deck-api/internal/infrastructure/messaging"
	"lecture-deck-api/internal/infrastructure/persistence/postgres"
	"lecture-deck-api/internal/infrastructure/persistence/redis"
	"lecture-deck-api/internal/interfaces/http/handler"
	"lecture-deck-api/internal/interfaces/http/router"
)

// Core 各服务共享的依赖集合
type Core struct {
	Cfg *config.Config

	PgClient    *postgres.Client
	RedisClient *redis.Client
	Cache       *redis.Cache
	Producer    *messaging.Producer

	LectureRepo  *postgres.LectureRepository
	ActivityRepo *postgres.ActivityRepository
	DeckJobRepo  *postgres.DeckJobRepository
	TxManager    *postgres.TxManager

	SegEngine  *segmentation.Engine
	DeckSvc    *deck.Service
	LectureSvc *lecture.Service
}

// NewCore 初始化数据层和应用服务，返回的清理函数负责关闭连接
func NewCore(cfg *config.Config) (*Core, func(), error) {
	pgClient, err := postgres.NewClient(&cfg.Database.Postgres)
	if err != nil {
		return nil, nil, err
	}

	redisClient, err := redis.NewClient(&cfg.Cache.Redis)
	if err != nil {
		_ = pgClient.Close()
		return nil, nil, err
	}

	cleanup := func() {
		_ = redisClient.Close()
		_ = pgClient.Close()
	}

	cache := redis.NewCache(redisClient)
	producer := messaging.NewProducer(redisClient.Redis(), int64(cfg.Messaging.RedisStream.MaxLen))

	lectureRepo := postgres.NewLectureRepository(pgClient)
	activityRepo := postgres.NewActivityRepository(pgClient)
	deckJobRepo := postgres.NewDeckJobRepository(pgClient)
	txManager := postgres.NewTxManager(pgClient)

	segEngine := segmentation.NewEngine(markup.NewParser(), segmentation.Config{
		MaxWordsPerSlide: cfg.Segmentation.MaxWordsPerSlide,
		MinSlides:        cfg.Segmentation.MinSlides,
		MaxSlides:        cfg.Segmentation.MaxSlides,
	})

	deckTTL := cfg.Cache.DeckTTL
	if deckTTL <= 0 {
		deckTTL = 10 * time.Minute
	}

	deckSvc := deck.NewService(lectureRepo, activityRepo, deckJobRepo, cache, producer, segEngine, deckTTL)
	lectureSvc := lecture.NewService(lectureRepo, activityRepo, txManager, deckSvc)

	return &Core{
		Cfg:          cfg,
		PgClient:     pgClient,
		RedisClient:  redisClient,
		Cache:        cache,
		Producer:     producer,
		LectureRepo:  lectureRepo,
		ActivityRepo: activityRepo,
		DeckJobRepo:  deckJobRepo,
		TxManager:    txManager,
		SegEngine:    segEngine,
		DeckSvc:      deckSvc,
		LectureSvc:   lectureSvc,
	}, cleanup, nil
}

// App API 服务应用
type App struct {
	*Core
	Router *router.Router
}

// New 组装 HTTP 应用
func New(cfg *config.Config) (*App, func(), error) {
	core, cleanup, err := NewCore(cfg)
	if err != nil {
		return nil, nil, err
	}

	uploader := imagehost.NewClient(&cfg.ImageHost)

	handlers := router.Handlers{
		Health:   handler.NewHealthHandler(core.PgClient, core.RedisClient),
		Lecture:  handler.NewLectureHandler(core.LectureSvc),
		Activity: handler.NewActivityHandler(core.LectureSvc),
		Deck:     handler.NewDeckHandler(core.DeckSvc),
		Image:    handler.NewImageHandler(uploader, core.LectureSvc),
	}

	r := router.New(cfg, handlers, redis.NewRateLimiter(core.RedisClient))

	return &App{
		Core:   core,
		Router: r,
	}, cleanup, nil
}
