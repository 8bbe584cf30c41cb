// Command token issues access tokens for the timesheet API. Session handling lives
// outside this service; operators use it to hand tokens to the SPA and to scripts.
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/jwt"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "token",
		Usage: "issue an access token for the timesheet API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "username",
				Aliases:  []string{"u"},
				Usage:    "username recorded as the actor of every change",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "admin",
				Usage: "allow the token to change manual punches, comments and events",
			},
			&cli.StringFlag{
				Name:    "secret",
				Usage:   "HS256 signing secret",
				EnvVars: []string{"JWT_SECRET_KEY"},
			},
			&cli.StringFlag{
				Name:    "expires",
				Usage:   "token lifetime",
				Value:   "12h",
				EnvVars: []string{"JWT_ACCESS_EXPIRATION_TIME"},
			},
		},
		Action: func(c *cli.Context) error {
			if c.String("secret") == "" {
				return cli.Exit("JWT_SECRET_KEY is required", 1)
			}
			if _, err := time.ParseDuration(c.String("expires")); err != nil {
				return cli.Exit(fmt.Sprintf("invalid expires: %v", err), 1)
			}

			service := jwt.NewJWTService(c.String("secret"), c.String("expires"))
			token, expiresAt, err := service.GenerateAccessToken(c.String("username"), c.Bool("admin"))
			if err != nil {
				return err
			}

			fmt.Fprintln(c.App.Writer, token)
			fmt.Fprintf(c.App.ErrWriter, "expires at %s\n", time.Unix(expiresAt, 0).Format(time.RFC3339))
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
