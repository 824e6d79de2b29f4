// Package gearsh is an in-process Go client for the gearsh artist catalog,
// backed by Postgres or SQLite. It serves tools and batch jobs that need
// catalog search without going through the HTTP API.
//
//	client, _ := gearsh.New(ctx, gearsh.WithSQLite("gearsh.db"))
//	defer client.Close()
//
//	res, _ := client.Search(ctx, gearsh.SearchOptions{
//	    Query:      "house",
//	    Categories: []string{"DJ"},
//	    Limit:      20,
//	})
//	page, _ := client.Artists().Get(ctx, res[0].ID)
package gearsh
