package main

import (
	_ "github.com/seha3/repair-orders/docs"
	"github.com/seha3/repair-orders/internal/adapter/http/routes"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Repair Orders API
// @version         1.0
// @description     Repair-order lifecycle and cost reconciliation (orders, quotes, authorizations, payments) backed by DynamoDB.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

func main() {
	routes.Run()
}
