package main

import "github.com/A-LKT/DiskPeek/internal/app"

func main() {
	app.Run()
}
