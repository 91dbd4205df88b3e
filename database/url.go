package database

import (
	"strings"
)

// ConstructDatabaseURL appends the database name to a base postgres URL.
// DATABASE_NAME empty means the base URL already names the database.
// sslmode=disable is added unless the URL sets one, since the deployment
// targets talk to postgres over a private network.
func ConstructDatabaseURL(baseURL, databaseName string) string {
	if databaseName == "" {
		return baseURL
	}

	base, query, hasQuery := strings.Cut(strings.TrimRight(baseURL, "/"), "?")

	databaseURL := base + "/" + databaseName
	if hasQuery {
		databaseURL += "?" + query
	}

	if !strings.Contains(databaseURL, "sslmode=") {
		if strings.Contains(databaseURL, "?") {
			databaseURL += "&sslmode=disable"
		} else {
			databaseURL += "?sslmode=disable"
		}
	}

	return databaseURL
}
