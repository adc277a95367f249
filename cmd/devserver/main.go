package main

import (
	"flag"

	"github.com/daybook-app/daybook-client/internal/devserver"
	"github.com/daybook-app/daybook-client/internal/logger"
	"github.com/daybook-app/daybook-client/internal/server"
)

func main() {
	address := flag.String("a", "localhost:8080", "listen address")
	userID := flag.Int64("user", 1, "user id bound to the auth token")
	token := flag.String("token", "dev-token", "bearer token accepted by the server")
	flag.Parse()

	log := logger.NewLogger("daybook-devserver")

	handler := devserver.NewServer(*userID, *token, log)
	srv, err := server.NewServer(handler.Init(), *address, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server")
	}

	srv.RunServer()
}
