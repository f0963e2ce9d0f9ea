package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/hyeonss0417/bulletin-board/models"
	"github.com/hyeonss0417/bulletin-board/services"
)

// NewSchema builds the GraphQL schema backed by the shared service layer. The
// queries and mutations mirror the REST surface one to one.
func NewSchema(users *services.UserService, posts *services.PostService) (graphql.Schema, error) {
	var userType *graphql.Object
	var postType *graphql.Object

	commentType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Comment",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Int),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					c, _ := commentFromSource(p.Source)
					return c.ID, nil
				},
			},
			"writerId": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Int),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					c, _ := commentFromSource(p.Source)
					return c.WriterID, nil
				},
			},
			"postId": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Int),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					c, _ := commentFromSource(p.Source)
					return c.PostID, nil
				},
			},
			"content": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					c, _ := commentFromSource(p.Source)
					return c.Content, nil
				},
			},
			"createdAt": &graphql.Field{
				Type: graphql.DateTime,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					c, _ := commentFromSource(p.Source)
					return c.CreatedAt, nil
				},
			},
			"updatedAt": &graphql.Field{
				Type: graphql.DateTime,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					c, _ := commentFromSource(p.Source)
					return c.UpdatedAt, nil
				},
			},
		},
	})

	paginationInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "PaginateCommentsInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"page":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Int)},
			"pageSize": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Int)},
		},
	})

	postType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Post",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Int),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					post, _ := postFromSource(p.Source)
					return post.ID, nil
				},
			},
			"writerId": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Int),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					post, _ := postFromSource(p.Source)
					return post.WriterID, nil
				},
			},
			"title": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					post, _ := postFromSource(p.Source)
					return post.Title, nil
				},
			},
			"content": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					post, _ := postFromSource(p.Source)
					return post.Content, nil
				},
			},
			"createdAt": &graphql.Field{
				Type: graphql.DateTime,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					post, _ := postFromSource(p.Source)
					return post.CreatedAt, nil
				},
			},
			"updatedAt": &graphql.Field{
				Type: graphql.DateTime,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					post, _ := postFromSource(p.Source)
					return post.UpdatedAt, nil
				},
			},
			"comments": &graphql.Field{
				Type: graphql.NewList(commentType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(paginationInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					post, ok := postFromSource(p.Source)
					if !ok {
						return nil, nil
					}
					input := p.Args["input"].(map[string]interface{})
					return posts.FindCommentsAsPagination(p.Context, post.ID, services.PaginateInput{
						Page:     intField(input, "page"),
						PageSize: intField(input, "pageSize"),
					})
				},
			},
		},
	})

	userType = graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Int),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					user, _ := userFromSource(p.Source)
					return user.ID, nil
				},
			},
			"email": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					user, _ := userFromSource(p.Source)
					return user.Email, nil
				},
			},
			"createdAt": &graphql.Field{
				Type: graphql.DateTime,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					user, _ := userFromSource(p.Source)
					return user.CreatedAt, nil
				},
			},
			"updatedAt": &graphql.Field{
				Type: graphql.DateTime,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					user, _ := userFromSource(p.Source)
					return user.UpdatedAt, nil
				},
			},
			"posts": &graphql.Field{
				Type: graphql.NewList(postType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					user, ok := userFromSource(p.Source)
					if !ok {
						return nil, nil
					}
					return users.GetPostsByUser(p.Context, user.ID)
				},
			},
			"comments": &graphql.Field{
				Type: graphql.NewList(commentType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					user, ok := userFromSource(p.Source)
					if !ok {
						return nil, nil
					}
					return users.GetCommentsByUser(p.Context, user.ID)
				},
			},
		},
	})

	postType.AddFieldConfig("writer", &graphql.Field{
		Type: userType,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			post, ok := postFromSource(p.Source)
			if !ok {
				return nil, nil
			}
			return users.FindOneOrFail(p.Context, post.WriterID)
		},
	})

	signUpInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "SignUpInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"email":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	signInInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "SignInInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"email":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	signInOutput := graphql.NewObject(graphql.ObjectConfig{
		Name: "SignInOutput",
		Fields: graphql.Fields{
			"accessToken": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	createPostInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CreatePostInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"title":   &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"content": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	updatePostInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UpdatePostInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"title":   &graphql.InputObjectFieldConfig{Type: graphql.String},
			"content": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	commentInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CommentInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"content": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"users": &graphql.Field{
				Type: graphql.NewList(userType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return users.FindAll(p.Context)
				},
			},
			"user": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return users.FindOneOrFail(p.Context, uintArg(p, "id"))
				},
			},
			"posts": &graphql.Field{
				Type: graphql.NewList(postType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return posts.FindAll(p.Context)
				},
			},
			"post": &graphql.Field{
				Type: postType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return posts.FindOneOrFail(p.Context, uintArg(p, "id"))
				},
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"signUp": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(signUpInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					input := p.Args["input"].(map[string]interface{})
					return users.SignUp(p.Context, services.SignUpInput{
						Email:    stringField(input, "email"),
						Password: stringField(input, "password"),
					})
				},
			},
			"signIn": &graphql.Field{
				Type: signInOutput,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(signInInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					input := p.Args["input"].(map[string]interface{})
					token, err := users.Login(p.Context, services.LoginInput{
						Email:    stringField(input, "email"),
						Password: stringField(input, "password"),
					})
					if err != nil {
						return nil, err
					}
					return map[string]interface{}{"accessToken": token}, nil
				},
			},
			"createPost": &graphql.Field{
				Type: postType,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(createPostInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					caller, err := requireCaller(p.Context)
					if err != nil {
						return nil, err
					}
					input := p.Args["input"].(map[string]interface{})
					return posts.Create(p.Context, caller.ID, services.CreatePostInput{
						Title:   stringField(input, "title"),
						Content: stringField(input, "content"),
					})
				},
			},
			"updatePost": &graphql.Field{
				Type: postType,
				Args: graphql.FieldConfigArgument{
					"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(updatePostInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					caller, err := requireCaller(p.Context)
					if err != nil {
						return nil, err
					}
					input := p.Args["input"].(map[string]interface{})
					return posts.Update(p.Context, caller.ID, uintArg(p, "id"), services.UpdatePostInput{
						Title:   optStringField(input, "title"),
						Content: optStringField(input, "content"),
					})
				},
			},
			"deletePost": &graphql.Field{
				Type: graphql.Boolean,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					caller, err := requireCaller(p.Context)
					if err != nil {
						return nil, err
					}
					return posts.Remove(p.Context, caller.ID, uintArg(p, "id"))
				},
			},
			"createComment": &graphql.Field{
				Type: commentType,
				Args: graphql.FieldConfigArgument{
					"postId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"input":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(commentInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					caller, err := requireCaller(p.Context)
					if err != nil {
						return nil, err
					}
					input := p.Args["input"].(map[string]interface{})
					return posts.CreateComment(p.Context, caller.ID, uintArg(p, "postId"), services.CreateCommentInput{
						Content: stringField(input, "content"),
					})
				},
			},
			"updateComment": &graphql.Field{
				Type: commentType,
				Args: graphql.FieldConfigArgument{
					"commentId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"input":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(commentInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					caller, err := requireCaller(p.Context)
					if err != nil {
						return nil, err
					}
					input := p.Args["input"].(map[string]interface{})
					return posts.UpdateComment(p.Context, caller.ID, uintArg(p, "commentId"), services.UpdateCommentInput{
						Content: stringField(input, "content"),
					})
				},
			},
			"deleteComment": &graphql.Field{
				Type: graphql.Boolean,
				Args: graphql.FieldConfigArgument{
					"commentId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					caller, err := requireCaller(p.Context)
					if err != nil {
						return nil, err
					}
					return posts.RemoveComment(p.Context, caller.ID, uintArg(p, "commentId"))
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}

// ========== source / argument coercion ==========

func userFromSource(src interface{}) (*models.User, bool) {
	switch v := src.(type) {
	case *models.User:
		return v, true
	case models.User:
		return &v, true
	}
	return &models.User{}, false
}

func postFromSource(src interface{}) (*models.Post, bool) {
	switch v := src.(type) {
	case *models.Post:
		return v, true
	case models.Post:
		return &v, true
	}
	return &models.Post{}, false
}

func commentFromSource(src interface{}) (*models.Comment, bool) {
	switch v := src.(type) {
	case *models.Comment:
		return v, true
	case models.Comment:
		return &v, true
	}
	return &models.Comment{}, false
}

func uintArg(p graphql.ResolveParams, name string) uint {
	if n, ok := p.Args[name].(int); ok && n > 0 {
		return uint(n)
	}
	return 0
}

func intField(m map[string]interface{}, key string) int {
	n, _ := m[key].(int)
	return n
}

func stringField(m map[string]interface{}, key string) string {
	s, _ := m[key].(string)
	return s
}

func optStringField(m map[string]interface{}, key string) *string {
	if s, ok := m[key].(string); ok {
		return &s
	}
	return nil
}
