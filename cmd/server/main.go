// Command server runs the document host: WOPI file endpoints, the editor
// save callback and the token endpoint.
package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/dochost/internal/server"
	"github.com/dmitrijs2005/dochost/internal/server/config"
)

func main() {
	ctx := context.Background()

	app, err := server.NewApp(ctx, config.LoadConfig())
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}

	app.Run(ctx)
}
