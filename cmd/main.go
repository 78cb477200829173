// cmd/main.go
package main

import (
	"bigwallet-api/app"
)

// @title           BigWallet Feed API
// @version         1.0
// @description     In-memory transaction feed with live search.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /
func main() {
	app.Run()
}
