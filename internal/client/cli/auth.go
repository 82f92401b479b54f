package cli

import (
	"context"
	"log"
	"os"
)

func (a *App) Register(ctx context.Context) error {

	name, err := GetSimpleText(a.reader, "Enter your name", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	token, err := a.api.SignUp(ctx, name, email, password)
	if err != nil {
		log.Printf("Registration unsuccessful: %s", err.Error())
		return err
	}

	a.token = token
	a.email = email
	log.Printf("Registration successful")
	return nil
}

func (a *App) Login(ctx context.Context) error {

	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	token, err := a.api.SignIn(ctx, email, password)
	if err != nil {
		log.Printf("Login unsuccessful: %s", err.Error())
		return err
	}

	a.token = token
	a.email = email
	log.Printf("Login successful")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.token = ""
	a.email = ""
	log.Printf("Logged out")
	return nil
}
