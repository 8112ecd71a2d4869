package routes

import (
	"log"
	"os"
	"strconv"

	_ "mecanica_os/docs" // This will be auto-generated
	"mecanica_os/internal/adapter/http/handlers"
	"mecanica_os/internal/adapter/http/middleware"
	repository2 "mecanica_os/internal/adapter/persistence/repository"
	"mecanica_os/internal/infrastructure/database"
	"mecanica_os/internal/infrastructure/notification"
	"mecanica_os/internal/infrastructure/payments"
	"mecanica_os/internal/infrastructure/security"
	"mecanica_os/internal/usecase"
	"mecanica_os/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const PORT = 8080

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	err := router.Run(":" + strconv.Itoa(PORT))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	ddb := database.ConnectDynamoDB()

	osRepo := repository2.NewServiceOrderDynamoRepository(ddb)
	customerRepo := repository2.NewCustomerDynamoRepository(ddb)
	vehicleRepo := repository2.NewVehicleDynamoRepository(ddb)
	partRepo := repository2.NewPartDynamoRepository(ddb)
	serviceRepo := repository2.NewServiceDynamoRepository(ddb)
	userRepo := repository2.NewUserDynamoRepository(ddb)
	paymentRepo := repository2.NewPaymentDynamoRepository(ddb)

	// Tokens are worthless without a real secret, so startup fails hard.
	tokens, err := security.NewJWTService(os.Getenv("JWT_SECRET"))
	if err != nil {
		log.Fatalf("JWT_SECRET must be set: %v", err)
	}

	notifier := notification.NewWebhookNotifier(os.Getenv("NOTIFICATION_WEBHOOK_URL"))

	var paymentGateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(os.Getenv("MERCADOPAGO_ACCESS_TOKEN"))
	if err != nil {
		log.Printf("Mercado Pago gateway not configured: %v", err)
	} else {
		paymentGateway = mpGateway
	}

	osUseCase := usecase.NewServiceOrderUseCase(osRepo, customerRepo, vehicleRepo, partRepo, serviceRepo, paymentRepo, notifier, paymentGateway)
	customerUseCase := usecase.NewCustomerUseCase(customerRepo)
	vehicleUseCase := usecase.NewVehicleUseCase(vehicleRepo, customerRepo)
	catalogUseCase := usecase.NewCatalogUseCase(partRepo, serviceRepo)
	authUseCase := usecase.NewAuthUseCase(userRepo, tokens)

	osHandler := handlers.NewServiceOrderHandler(osUseCase)
	customerHandler := handlers.NewCustomerHandler(customerUseCase)
	vehicleHandler := handlers.NewVehicleHandler(vehicleUseCase)
	catalogHandler := handlers.NewCatalogHandler(catalogUseCase)
	authHandler := handlers.NewAuthHandler(authUseCase)

	requireAuth := middleware.RequireAuth(tokens)

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addAuthRoutes(v1, requireAuth, authHandler)
	addServiceOrderRoutes(v1, requireAuth, osHandler)
	addRegistryRoutes(v1, requireAuth, customerHandler, vehicleHandler, catalogHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
