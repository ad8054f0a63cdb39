package routes

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"

	_ "github.com/seha3/repair-orders/docs" // generated swagger spec
	"github.com/seha3/repair-orders/internal/adapter/http/handlers"
	"github.com/seha3/repair-orders/internal/adapter/persistence/memory"
	"github.com/seha3/repair-orders/internal/adapter/persistence/repository"
	"github.com/seha3/repair-orders/internal/infrastructure/database"
	"github.com/seha3/repair-orders/internal/infrastructure/idgen"
	"github.com/seha3/repair-orders/internal/infrastructure/payments"
	"github.com/seha3/repair-orders/internal/infrastructure/seed"
	"github.com/seha3/repair-orders/internal/usecase"
	"github.com/seha3/repair-orders/internal/usecase/interfaces"

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
	orderRepo, catalogRepo, paymentRepo := buildStores()

	ids := idgen.New()

	var paymentGateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(os.Getenv("MERCADOPAGO_ACCESS_TOKEN"))
	if err != nil {
		log.Printf("Mercado Pago gateway not configured: %v", err)
	} else {
		paymentGateway = mpGateway
	}

	lifecycleUseCase := usecase.NewOrderLifecycleUseCase(orderRepo, ids)
	lineItemUseCase := usecase.NewLineItemUseCase(orderRepo, ids)
	realCostUseCase := usecase.NewRealCostUseCase(orderRepo, ids)
	paymentUseCase := usecase.NewPaymentUseCase(paymentRepo, orderRepo, ids, paymentGateway)

	orderHandler := handlers.NewOrderHandler(lifecycleUseCase)
	lineItemHandler := handlers.NewLineItemHandler(lineItemUseCase, realCostUseCase)
	paymentHandler := handlers.NewPaymentHandler(paymentUseCase)
	catalogHandler := handlers.NewCatalogHandler(catalogRepo)

	if seedEnabled() {
		if err := seed.Load(context.Background(), orderRepo, catalogRepo); err != nil {
			log.Printf("[seed] failed: %v", err)
		}
	}

	// Rutas públicas
	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addOrderRoutes(v1, orderHandler, lineItemHandler, paymentHandler)
	addCatalogRoutes(v1, catalogHandler)
}

// buildStores selects the persistence backend. ORDERS_STORE=memory keeps
// everything in process, which is what the demo seed and local development
// use; anything else goes to DynamoDB.
func buildStores() (interfaces.IOrderRepository, interfaces.ICatalogRepository, interfaces.IPaymentRepository) {
	store := strings.ToLower(strings.TrimSpace(os.Getenv("ORDERS_STORE")))
	if store == "memory" {
		log.Printf("[store] using in-memory repositories")
		return memory.NewOrderMemoryRepository(), memory.NewCatalogMemoryRepository(), memory.NewPaymentMemoryRepository()
	}

	ddb := database.ConnectDynamoDB()
	return repository.NewOrderDynamoRepository(ddb), repository.NewCatalogDynamoRepository(ddb), repository.NewPaymentDynamoRepository(ddb)
}

func seedEnabled() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("SEED_DEMO_DATA")))
	switch v {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
