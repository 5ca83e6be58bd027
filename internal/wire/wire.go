package wire

import (
	"Inkstone/internal/api"
	"Inkstone/internal/api/config"
	"Inkstone/internal/api/handler"
	"Inkstone/internal/job"
	"Inkstone/internal/pkg/cron"
	"Inkstone/internal/pkg/es"
	"Inkstone/internal/pkg/kafka"
	pkgmongo "Inkstone/internal/pkg/mongo"
	"Inkstone/internal/repository"
	"Inkstone/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	Producer     kafka.Producer
	KafkaManager *kafka.ConsumerManager
	CronManager  *cron.Manager
}

func BuildApplication(db *gorm.DB, mdb *mongo.Database, cfg *config.Config) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepo(db)

	postRepo := pkgmongo.NewPostRepo(mdb)
	commentRepo := pkgmongo.NewCommentRepo(mdb)
	notificationRepo := pkgmongo.NewNotificationRepo(mdb)

	postESRepo := es.NewPostRepo(es.Client)

	producer, err := kafka.NewProducer(cfg)
	if err != nil {
		return nil, err
	}

	userService := service.NewUserService(userRepo)
	postService := service.NewPostService(postRepo, commentRepo, postESRepo, producer)
	commentService := service.NewCommentService(commentRepo, postRepo, producer)
	notificationService := service.NewNotificationService(notificationRepo)

	handlers := &api.HandlersGroup{
		UserHandler:         handler.NewUserHandler(userService),
		PostHandler:         handler.NewPostHandler(postService),
		CommentHandler:      handler.NewCommentHandler(commentService),
		NotificationHandler: handler.NewNotificationHandler(notificationService),
		MediaHandler:        handler.NewMediaHandler(),
	}

	router := api.SetupRouter(handlers)

	kafkaMgr, err := kafka.NewConsumerManager(cfg, notificationRepo, postESRepo)
	if err != nil {
		return nil, err
	}

	cronMgr := cron.NewCronManager(job.NewCommentCountJob(postRepo, commentRepo))

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		Producer:     producer,
		KafkaManager: kafkaMgr,
		CronManager:  cronMgr,
	}, nil
}
