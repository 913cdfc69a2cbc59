package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stafflens/goalboard/internal/auth"
)

type TokenCmd struct {
	Principal string        `help:"Principal ID (UUID)" required:""`
	TTL       time.Duration `help:"Token lifetime" default:"1h"`
	Secret    string        `help:"Token signing secret" required:"" env:"GOALBOARD_TOKEN_SECRET"`
}

func (t *TokenCmd) Run(ctx context.Context) error {
	principalID, err := uuid.Parse(t.Principal)
	if err != nil {
		return fmt.Errorf("invalid principal ID: %w", err)
	}

	signer, err := auth.NewTokenSigner([]byte(t.Secret))
	if err != nil {
		return err
	}

	token, err := signer.Issue(principalID, t.TTL)
	if err != nil {
		return err
	}

	fmt.Println(token)
	return nil
}
