package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/todograph/todograph/internal/client/api"
)

func formatTodo(t api.Todo) string {
	mark := " "
	if t.IsDone {
		mark = "x"
	}
	s := fmt.Sprintf("[%s] %s  %s", mark, t.ID, t.Task)
	if t.Description != "" {
		s = s + " - " + t.Description
	}
	return s
}

func (a *App) List(ctx context.Context) error {
	user, err := a.api.GetUser(ctx, a.token)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	if len(user.Todos) == 0 {
		printlnFn("No todos yet.")
		return nil
	}

	for _, item := range user.Todos {
		printlnFn(formatTodo(item))
	}
	return nil
}

func (a *App) Add(ctx context.Context) error {

	task, err := GetSimpleText(a.reader, "Enter task", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	description, err := GetSimpleText(a.reader, "Enter description (optional)", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	msg, err := a.api.CreateTodo(ctx, a.token, task, description)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	printlnFn(msg)
	return nil
}

func (a *App) Done(ctx context.Context) error {

	id, err := GetSimpleText(a.reader, "Enter todo id to toggle", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	todo, err := a.api.MarkTodo(ctx, a.token, id)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	printlnFn(formatTodo(*todo))
	return nil
}

func (a *App) Edit(ctx context.Context) error {

	id, err := GetSimpleText(a.reader, "Enter todo id to edit", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	task, err := GetSimpleText(a.reader, "New task (leave empty to keep)", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	description, err := GetSimpleText(a.reader, "New description (leave empty to keep)", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	todo, err := a.api.UpdateTodo(ctx, a.token, id, task, description)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	printlnFn(formatTodo(*todo))
	return nil
}

func (a *App) Show(ctx context.Context) error {

	id, err := GetSimpleText(a.reader, "Enter todo id to show", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	todo, err := a.api.GetTodoByID(ctx, a.token, id)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	printlnFn(formatTodo(*todo))
	return nil
}

func (a *App) Delete(ctx context.Context) error {

	id, err := GetSimpleText(a.reader, "Enter todo id to delete", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	msg, err := a.api.DeleteTodo(ctx, a.token, id)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	printlnFn(msg)
	return nil
}
