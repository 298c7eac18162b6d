package service

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"blogposts/app/config"
	"blogposts/app/repositories"

	log "github.com/sirupsen/logrus"
)

// openStore opens the document store described by cfg.
func openStore(cfg *config.Config) (*repositories.Repository, error) {
	return repositories.Open(repositories.Options{
		Path:     cfg.DBPath,
		InMemory: cfg.InMemory,
		Logger:   log.WithField("component", "badger"),
	})
}

// dbExists reports whether the on-disk database directory is present.
func dbExists(cfg *config.Config) bool {
	if cfg.InMemory {
		return false
	}
	_, err := os.Stat(cfg.DBPath)
	return err == nil
}

// confirm asks a yes/no question and reads the answer from in.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N] ", question)
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && response == "" {
		return false
	}
	response = strings.TrimSpace(response)
	return response == "y" || response == "Y"
}
