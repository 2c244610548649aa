// Command fsmdemo serves the article workflow over HTTP.
//
//	fsmdemo serve            # start the server
//	fsmdemo routes -o yaml   # print the generated transition routes
//	fsmdemo migrate          # apply Postgres migrations
//
// Configuration comes from the environment (and an optional .env file);
// see appConfig and the Config types of pkg/httpserver, pkg/pg, pkg/redis
// and pkg/mongo.
package main

func main() {
	Execute()
}
