package main

import (
	"os"

	"github.com/lshigami/intuity-sync/internal/cli"
)

// @title Intuity Sync API
// @version 1.0
// @description Classroom question and response sync. Writes land in local storage first and are mirrored to the remote backend when it is reachable.
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	os.Exit(cli.Execute())
}
