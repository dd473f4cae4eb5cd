package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	authDomain "github.com/onionboard/backend/internal/auth/domain"
)

// TokenIssuer issues tokens for existing users.
type TokenIssuer interface {
	IssueToken(ctx context.Context, username string) (*authDomain.IssuedToken, error)
}

// RunIssueToken issues a token for username without a password check, for
// operators and smoke tests. The token itself is written to out, never logged.
func RunIssueToken(
	ctx context.Context,
	issuer TokenIssuer,
	logger *slog.Logger,
	out io.Writer,
	username string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	issued, err := issuer.IssueToken(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to issue token: %w", err)
	}

	logger.Info("token issued",
		slog.String("username", issued.Subject),
		slog.Time("expires_at", issued.ExpiresAt),
	)

	if format == "json" {
		return writeJSON(out, map[string]any{
			"token":      issued.Token,
			"username":   issued.Subject,
			"issued_at":  issued.IssuedAt.UTC().Format(time.RFC3339),
			"expires_at": issued.ExpiresAt.UTC().Format(time.RFC3339),
		})
	}

	_, _ = fmt.Fprintf(out, "Token for %s (expires %s):\n%s\n",
		issued.Subject, issued.ExpiresAt.UTC().Format(time.RFC3339), issued.Token)
	return nil
}
