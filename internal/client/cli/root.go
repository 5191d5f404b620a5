package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	if u := a.sessions.CurrentUser(); u != nil {
		return fmt.Sprintf("(%s)", u.Email)
	}
	return ""
}

// Root runs the interactive command loop until EOF or an exit command.
func (a *App) Root(ctx context.Context) {
	fmt.Println("Wintakam CLI (tapez 'help' pour les commandes)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("wintakam %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Println("Commandes : (l)ist, show <id>, mine, upload <id> <fichier>, whoami, logout, exit")
			} else {
				fmt.Println("Commandes : (l)ist, show <id>, login, exit")
			}

		case "login":
			a.Login(ctx)
		case "logout":
			a.Logout(ctx)
		case "whoami":
			a.WhoAmI(ctx)
		case "l", "list":
			a.List(ctx)
		case "mine":
			a.Mine(ctx)
		case "show":
			if len(args) == 0 {
				fmt.Println("Usage : show <id>")
				continue
			}
			a.Show(ctx, args[0])
		case "upload":
			if len(args) < 2 {
				fmt.Println("Usage : upload <id> <fichier>")
				continue
			}
			a.Upload(ctx, args[0], args[1])
		case "exit", "quit":
			fmt.Println("À bientôt !")
			return
		default:
			fmt.Println("Commande inconnue :", cmd)
		}
	}
}
