package main

import "github.com/killallgit/podradio/cmd"

// @title           podradio API
// @version         1.0.0
// @description     Samples random playable podcast episodes from curated RSS feeds and single-episode lists
// @contact.name    API Support
// @contact.url     https://github.com/killallgit/podradio
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8080
// @BasePath        /
// @schemes         http https
func main() {
	cmd.Execute()
}
