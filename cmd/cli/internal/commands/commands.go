package commands

import (
	"github.com/stafflens/goalboard/internal/client"
)

type Globals struct {
	Debug   bool
	Version string
}

// ServerFlags is the connection config shared by every API command.
type ServerFlags struct {
	Server string `help:"goals API base URL" default:"http://localhost:8080" env:"GOALBOARD_SERVER"`
	Token  string `help:"access token" required:"" env:"GOALBOARD_TOKEN"`
}

func (s *ServerFlags) client() *client.Client {
	return client.New(s.Server, s.Token)
}
