package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/wintakam/wintakam/internal/common"
)

// getSimpleText, getPassword and getYesNo are indirections used to facilitate
// testing. They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword
var getYesNo = GetYesNo

// Login prompts for credentials and a "remember me" choice and attempts a
// single sign-in. Failures are reported with the session layer's localized
// message; no retry loop is run here.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	remember, err := getYesNo(a.reader, "Rester connecté ?", os.Stdout)
	if err != nil {
		return err
	}

	res := a.sessions.SignIn(ctx, email, string(password), remember)
	if !res.Success {
		fmt.Println(res.ErrorMessage)
		return nil
	}

	fmt.Printf("Bienvenue, %s !\n", res.User.DisplayName())
	return nil
}

// Logout ends the current session. It always appears to succeed.
func (a *App) Logout(ctx context.Context) error {
	a.sessions.SignOut(ctx)
	fmt.Println("Vous êtes déconnecté.")
	return nil
}

// WhoAmI prints the current user, if any.
func (a *App) WhoAmI(ctx context.Context) error {
	u := a.sessions.CurrentUser()
	if u == nil {
		fmt.Println("Non connecté.")
		return nil
	}
	fmt.Printf("%s <%s>\n", u.DisplayName(), u.Email)
	if u.LastSignInAt != nil {
		fmt.Printf("Dernière connexion : %s\n", u.LastSignInAt.Format("2006-01-02 15:04"))
	}
	return nil
}
