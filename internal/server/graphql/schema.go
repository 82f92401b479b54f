// Package graphql is the API gateway: it exposes the query/mutation surface
// over a single HTTP endpoint, resolves the caller's identity from a bearer
// token, and maps service errors onto the public error taxonomy.
package graphql

import (
	"github.com/graphql-go/graphql"
	"github.com/todograph/todograph/internal/server/models"
	"github.com/todograph/todograph/internal/server/services"
)

// Confirmation strings are part of the wire contract; existing clients match
// on them.
const (
	msgTodoSaved   = "Todo saved successfully!"
	msgTodoDeleted = "Todo deleted successfully!"
	msgAllDeleted  = "All Todos and Users have been deleted"
)

type resolver struct {
	users *services.UserService
	todos *services.TodoService
}

func stringArg(args map[string]interface{}, name string) string {
	if v, ok := args[name].(string); ok {
		return v
	}
	return ""
}

func boolArg(args map[string]interface{}, name string) bool {
	if v, ok := args[name].(bool); ok {
		return v
	}
	return false
}

// NewSchema assembles the executable schema over the two services.
func NewSchema(users *services.UserService, todos *services.TodoService) (graphql.Schema, error) {
	r := &resolver{users: users, todos: todos}

	todoType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Todo",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"task":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"description": &graphql.Field{Type: graphql.String},
			"isDone":      &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
		},
	})

	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id":    &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name":  &graphql.Field{Type: graphql.String},
			"email": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"todos": &graphql.Field{
				Type: graphql.NewList(graphql.NewNonNull(todoType)),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					user, ok := p.Source.(*models.User)
					if !ok {
						return nil, nil
					}
					list, err := r.todos.ListForUser(p.Context, user.ID)
					if err != nil {
						return nil, wrapError(err)
					}
					return list, nil
				},
			},
		},
	})

	authPayloadType := graphql.NewObject(graphql.ObjectConfig{
		Name: "AuthPayload",
		Fields: graphql.Fields{
			"token": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"getUser": &graphql.Field{
				Type: userType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					user, err := r.users.GetUser(p.Context, userIDFromContext(p.Context))
					if err != nil {
						return nil, wrapError(err)
					}
					return user, nil
				},
			},
			"getTodoById": &graphql.Field{
				Type: todoType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					todo, err := r.todos.GetByID(p.Context, userIDFromContext(p.Context), stringArg(p.Args, "id"))
					if err != nil {
						return nil, wrapError(err)
					}
					return todo, nil
				},
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"signUpUser": &graphql.Field{
				Type: authPayloadType,
				Args: graphql.FieldConfigArgument{
					"name":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					token, err := r.users.Register(p.Context,
						stringArg(p.Args, "name"), stringArg(p.Args, "email"), stringArg(p.Args, "password"))
					if err != nil {
						return nil, wrapError(err)
					}
					return map[string]interface{}{"token": token}, nil
				},
			},
			"signInUser": &graphql.Field{
				Type: authPayloadType,
				Args: graphql.FieldConfigArgument{
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					token, err := r.users.Authenticate(p.Context,
						stringArg(p.Args, "email"), stringArg(p.Args, "password"))
					if err != nil {
						return nil, wrapError(err)
					}
					return map[string]interface{}{"token": token}, nil
				},
			},
			"createTodo": &graphql.Field{
				Type: graphql.String,
				Args: graphql.FieldConfigArgument{
					"task":        &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"description": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					_, err := r.todos.Create(p.Context, userIDFromContext(p.Context),
						stringArg(p.Args, "task"), stringArg(p.Args, "description"))
					if err != nil {
						return nil, wrapError(err)
					}
					return msgTodoSaved, nil
				},
			},
			"updateOrMarkTodo": &graphql.Field{
				Type: todoType,
				Args: graphql.FieldConfigArgument{
					"todoId":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"task":        &graphql.ArgumentConfig{Type: graphql.String},
					"isMark":      &graphql.ArgumentConfig{Type: graphql.Boolean},
					"description": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					params := services.UpdateParams{
						Task:        stringArg(p.Args, "task"),
						Description: stringArg(p.Args, "description"),
						IsMark:      boolArg(p.Args, "isMark"),
					}
					todo, err := r.todos.Update(p.Context, userIDFromContext(p.Context),
						stringArg(p.Args, "todoId"), params)
					if err != nil {
						return nil, wrapError(err)
					}
					return todo, nil
				},
			},
			"deleteTodo": &graphql.Field{
				Type: graphql.String,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if err := r.todos.Delete(p.Context, userIDFromContext(p.Context), stringArg(p.Args, "id")); err != nil {
						return nil, wrapError(err)
					}
					return msgTodoDeleted, nil
				},
			},
			"deleteUsersTodos": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if err := r.users.DeleteAllUsersAndTodos(p.Context); err != nil {
						return nil, wrapError(err)
					}
					return msgAllDeleted, nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: queryType, Mutation: mutationType})
}
