// Package swagger builds OpenAPI 3.1 documents from documented routes of a
// web.App and serves them.
//
// A route is documented by wrapping its handler:
//
//	app := web.New(web.Config{})
//
//	app.Get("/pet/:petId", swagger.Documented(
//	    swagger.NewRoute().
//	        Summary("Find pet by ID").
//	        Tags("pet").
//	        Param(swagger.PathParam("petId").Type(int64(0))).
//	        Response(
//	            swagger.Status(http.StatusOK).JSON(Pet{}),
//	            swagger.Status(http.StatusNotFound).Description("Pet not found"),
//	        ),
//	    http.HandlerFunc(getPet),
//	))
//
//	err := swagger.Serve(app, &openapi.Document{
//	    Info: openapi.Info{Title: "Swagger Petstore", Version: "1.0.0"},
//	}, nil)
//
// Serve reads the app's routing table once, builds the document and
// registers it as YAML on "/swagger/yaml" ("?format=json" selects JSON),
// together with a Swagger UI page on "/swagger/ui/".
//
// # Paths
//
// Colon segments are rewritten to template expressions ("/pet/:petId"
// becomes "/pet/{petId}"). Routes sharing a raw path share one Path Item.
// Filters (before/after), websocket, CONNECT and invalid handler types are
// ignored; routes without documentation are skipped.
//
// # Schemas
//
// Parameter, request and response types are resolved through an
// openapi.SchemaResolver that is fresh for every Build call. Object types
// are registered under components/schemas and referenced via $ref.
//
// # Groups
//
// A Group carries tags, security, parameters and responses shared by a
// set of routes:
//
//	pets := swagger.NewGroup().Tags("pet")
//	app.Post("/pet", swagger.Documented(pets.Route().Request(swagger.JSON(Pet{})), h))
package swagger
