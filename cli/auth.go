package cli

import (
	"context"
	"flag"
	"fmt"

	"abhyaasi/api"
	"abhyaasi/store"
	"abhyaasi/validators"
)

func (cli *CommandLine) login(args []string) error {
	loginCmd := flag.NewFlagSet("login", flag.ExitOnError)
	email := loginCmd.String("email", "", "Account email")
	if err := loginCmd.Parse(args); err != nil {
		return err
	}

	addr := *email
	var err error
	if addr == "" {
		if addr, err = cli.prompt("Email: "); err != nil {
			return err
		}
	}
	password, err := cli.prompt("Password: ")
	if err != nil {
		return err
	}

	res, err := cli.api.Users.Login(context.Background(), api.LoginRequest{
		Email:    addr,
		Password: password,
	})
	if err != nil {
		fmt.Fprintf(cli.out, "Login failed: %s\n", errText(err))
		return err
	}
	if err := cli.sess.SaveLogin(res); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Welcome back, %s!\n", res.User.Name)
	return nil
}

func (cli *CommandLine) register(args []string) error {
	registerCmd := flag.NewFlagSet("register", flag.ExitOnError)
	name := registerCmd.String("name", "", "Full name")
	email := registerCmd.String("email", "", "Email address")
	mobile := registerCmd.String("mobile", "", "Mobile number (optional)")
	if err := registerCmd.Parse(args); err != nil {
		return err
	}

	password, err := cli.prompt("Password: ")
	if err != nil {
		return err
	}
	confirm, err := cli.prompt("Confirm password: ")
	if err != nil {
		return err
	}

	form := validators.RegisterForm{
		Name:            *name,
		Email:           *email,
		Mobile:          *mobile,
		Password:        password,
		ConfirmPassword: confirm,
	}
	if errs := validators.Check(form); len(errs) > 0 {
		for field, msg := range errs {
			fmt.Fprintf(cli.out, "  %s: %s\n", field, msg)
		}
		return fmt.Errorf("validation failed")
	}

	ctx := context.Background()
	if err := cli.api.Users.Register(ctx, api.RegisterRequest{
		Name:     *name,
		Email:    *email,
		Mobile:   *mobile,
		Password: password,
	}); err != nil {
		fmt.Fprintf(cli.out, "Registration failed: %s\n", errText(err))
		return err
	}

	otp, err := cli.prompt("Enter the OTP sent to your email: ")
	if err != nil {
		return err
	}
	res, err := cli.api.Users.VerifyOTP(ctx, *email, otp)
	if err != nil {
		fmt.Fprintf(cli.out, "OTP verification failed: %s\n", errText(err))
		return err
	}
	if err := cli.sess.SaveLogin(res); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Account created. Welcome, %s!\n", res.User.Name)
	return nil
}

func (cli *CommandLine) logout() error {
	if err := cli.sess.Logout(); err != nil {
		return err
	}
	fmt.Fprintln(cli.out, "Logged out.")
	return nil
}

func (cli *CommandLine) settings(args []string) error {
	settingsCmd := flag.NewFlagSet("settings", flag.ExitOnError)
	theme := settingsCmd.String("theme", "", "Set the editor theme")
	newEmail := settingsCmd.String("change-email", "", "Start an email change (OTP-gated)")
	deleteAccount := settingsCmd.Bool("delete-account", false, "Delete the account (OTP-gated)")
	if err := settingsCmd.Parse(args); err != nil {
		return err
	}

	ctx := context.Background()
	switch {
	case *theme != "":
		if err := cli.store.Set(store.KeyEditorTheme, *theme); err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "Editor theme set to %q.\n", *theme)
		return nil

	case *newEmail != "":
		form := validators.EmailChangeForm{NewEmail: *newEmail}
		if errs := validators.Check(form); len(errs) > 0 {
			for field, msg := range errs {
				fmt.Fprintf(cli.out, "  %s: %s\n", field, msg)
			}
			return fmt.Errorf("validation failed")
		}
		if err := cli.api.Users.RequestEmailChange(ctx, *newEmail); err != nil {
			fmt.Fprintf(cli.out, "Email change failed: %s\n", errText(err))
			return err
		}
		otp, err := cli.prompt("Enter the OTP sent to the new address: ")
		if err != nil {
			return err
		}
		if err := cli.api.Users.ConfirmEmailChange(ctx, *newEmail, otp); err != nil {
			fmt.Fprintf(cli.out, "Email change failed: %s\n", errText(err))
			return err
		}
		cli.sess.InvalidateUser()
		fmt.Fprintln(cli.out, "Email updated.")
		return nil

	case *deleteAccount:
		otp, err := cli.prompt("Enter the OTP sent to your email: ")
		if err != nil {
			return err
		}
		if err := cli.api.Users.DeleteAccount(ctx, otp); err != nil {
			fmt.Fprintf(cli.out, "Account deletion failed: %s\n", errText(err))
			return err
		}
		_ = cli.sess.Logout()
		fmt.Fprintln(cli.out, "Account deleted.")
		return nil

	default:
		theme, ok := cli.store.Get(store.KeyEditorTheme)
		if !ok {
			theme = "default"
		}
		fmt.Fprintf(cli.out, "Editor theme: %s\n", theme)
		return nil
	}
}

// errText extracts the friendliest message available from an error.
func errText(err error) string {
	if apiErr, ok := err.(*api.Error); ok && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}
