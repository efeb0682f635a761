// Package web is a small web application layer with colon-style path
// parameters, built on gorilla/mux.
//
//	app := web.New(web.Config{Logger: logger})
//	app.Get("/pet/:id", http.HandlerFunc(getPet))
//	app.Before("*", http.HandlerFunc(audit))
//	if err := app.ListenAndServe(ctx, ":7000"); err != nil {
//	    log.Fatal(err)
//	}
//
// Every registration is kept in a routing table (Routes) together with its
// HandlerType, so that tooling such as documentation generators can inspect
// the application after setup. Path variables are read with mux.Vars.
//
// # Middleware
//
// Middleware registered with Use wraps the complete dispatch, so it also
// sees unmatched requests and filters. New installs RecoveryMiddleware and,
// when configured, RequestIDMiddleware. RequestSizeLimitMiddleware and
// SecurityHeadersMiddleware validate their config and are added with Use.
// EnableCORS adds CORS handling:
//
//	if err := app.EnableCORS(web.CORSConfig{
//	    AllowedOrigins: []string{"https://editor.swagger.io"},
//	}); err != nil {
//	    log.Fatal(err)
//	}
//
// # Static Files
//
// Static mounts an fs.FS under a URL prefix:
//
//	//go:embed ui
//	var ui embed.FS
//
//	sub, _ := fs.Sub(ui, "ui")
//	app.Static("/swagger/ui/", web.StaticFilesConfig{FS: sub})
package web
