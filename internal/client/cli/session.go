package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/escc-report-api/internal/client/client"
	"github.com/dmitrijs2005/escc-report-api/internal/common"
)

func (a *App) Login(ctx context.Context, username string) error {
	password, err := GetPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.client.Login(ctx, username, password)
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode != 0 {
			a.log.Warn(ctx, "login rejected",
				"username", username, "errorCode", apiErr.ErrorCode, "loginAttempts", apiErr.LoginAttempts)
		}
		return err
	}

	a.log.Info(ctx, "login successful", "username", username)
	if s.User != nil {
		fmt.Fprintf(a.out, "user: %s (id %d, %s)\n", s.User.Username, s.User.UserID, s.User.UserWorkEmail)
	}
	a.printTokens(s)
	return nil
}

func (a *App) Refresh(ctx context.Context, token string) error {
	s, err := a.client.Refresh(ctx, token)
	if err != nil {
		return err
	}
	a.printTokens(s)
	return nil
}

func (a *App) Ping(ctx context.Context) error {
	if err := a.client.Ping(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "ok")
	return nil
}

func (a *App) printTokens(s *client.Session) {
	fmt.Fprintf(a.out, "token: %s\n", s.Token)
	fmt.Fprintf(a.out, "refresh_token: %s\n", s.RefreshToken)
}
