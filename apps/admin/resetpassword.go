package main

import (
	"context"
	"time"

	"github.com/tuitionlk/portal/core"
	"github.com/tuitionlk/portal/core/account"
)

func (cli *commandLine) resetPassword(email, pwd string) error {
	ctx := context.Background()
	acct, err := cli.acctRepo.GetAccountByEmail(ctx, core.CleanString(email, true /* lower */))
	if err != nil {
		return err
	}

	upd := account.Account{ID: acct.ID, UpdatedAt: time.Now().UTC()}
	if err := upd.SetPassword(pwd); err != nil {
		return err
	}
	if _, err := cli.acctRepo.UpdateAccount(ctx, upd, nil); err != nil {
		return err
	}
	return nil
}
