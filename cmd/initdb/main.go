// Command initdb creates the ledger database and schema, then exits. Useful
// for provisioning a deployment before the bot first starts.
package main

import (
	"github.com/Boburjon2142/technoxisobbot/internal/cli"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	cfg := cli.LoadAndValidateConfig(logger)

	store := cli.OpenStore(logger, cfg.DBPath)
	defer store.Close()

	logger.Info("Database initialized", "path", cfg.DBPath)
}
