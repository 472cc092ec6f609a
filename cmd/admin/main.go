package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/badoux/checkmail"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"blackjack-server/pkg/table"
)

var command = flag.String("c", "user", "specifies the command (user, verify, reset-password)")

func main() {
	flag.Parse()

	switch *command {
	case "user":
		createUser()
	case "verify":
		verifyUser()
	case "reset-password":
		resetPassword()
	default:
		logrus.Fatalf("unknown command: %s", *command)
	}
}

// createUser creates a verified player and optionally promotes it to site admin
func createUser() {
	email := getEmail()
	if email == "" {
		os.Exit(1)
	}

	password := getPassword()
	if password == "" {
		os.Exit(1)
	}

	player, err := table.CreatePlayer(context.Background(), email, "Admin", password, "127.0.0.1")
	if err != nil {
		logrus.WithError(err).Fatal("could not create player")
	}

	fmt.Printf("Created user %d\n", player.ID)

	name, err := getInput("Name")
	if err != nil {
		logrus.WithError(err).Fatal("could not get answer")
	}

	if name != "" {
		player.DisplayName = name
	}

	player.Verified = true
	if err := player.Save(context.Background()); err != nil {
		logrus.WithError(err).Fatal("could not save player")
	}

	promote, err := getInput("Make admin (Y/n)")
	if err != nil {
		logrus.WithError(err).Fatal("could not get answer")
	}

	if promote == "" || strings.ToLower(promote)[0] == 'y' {
		if err := player.SetIsSiteAdmin(context.Background(), true); err != nil {
			logrus.WithError(err).Fatal("could not promote user to admin")
		}

		fmt.Printf("User promoted to admin\n")
	}
}

// verifyUser marks an existing player as verified so they can log in
func verifyUser() {
	email := getEmail()
	if email == "" {
		os.Exit(1)
	}

	player, err := table.GetPlayerByEmail(context.Background(), email)
	if err != nil {
		logrus.WithError(err).Fatal("could not find player")
	}

	player.Verified = true
	if err := player.Save(context.Background()); err != nil {
		logrus.WithError(err).Fatal("could not save player")
	}

	fmt.Printf("User %d verified\n", player.ID)
}

// resetPassword issues a password reset token for a player. The server
// does not send email, so the token is handed out here instead.
func resetPassword() {
	email := getEmail()
	if email == "" {
		os.Exit(1)
	}

	player, err := table.GetPlayerByEmail(context.Background(), email)
	if err != nil {
		logrus.WithError(err).Fatal("could not find player")
	}

	token, err := player.CreatePasswordResetRequest(context.Background())
	if err != nil {
		logrus.WithError(err).Fatal("could not create reset request")
	}

	fmt.Printf("Reset token: %s\n", token)
	fmt.Printf("POST /player/reset-password/%s\n", token)
}

func getPassword() string {
	for {
		fmt.Print("Password: ")
		pwBytes, err := term.ReadPassword(0)
		if err != nil {
			continue
		}
		fmt.Println("")

		password := strings.TrimRight(string(pwBytes), "\r\n")

		if password == "" {
			return ""
		}

		if len(password) < 6 {
			_, _ = fmt.Fprintf(os.Stderr, "password must be 6 or more characters\n")
			continue
		}

		return password
	}
}

func getEmail() string {
	for {
		fmt.Print("Email: ")
		reader := bufio.NewReader(os.Stdin)
		str, err := reader.ReadString('\n')
		if err != nil {
			logrus.WithError(err).Warn("could not read email")
		}

		str = strings.TrimRight(str, "\r\n")

		if str == "" {
			return ""
		}

		if err := checkmail.ValidateFormat(str); err != nil {
			_, _ = fmt.Fprintln(os.Stderr, err)
			continue
		}

		return str
	}
}

func getInput(question string) (string, error) {
	fmt.Printf("%s: ", question)
	reader := bufio.NewReader(os.Stdin)
	str, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	str = strings.TrimRight(str, "\r\n")

	return str, nil
}
