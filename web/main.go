package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/sphere-raytracer/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	sceneDir := flag.String("scenes", "scenes", "Directory containing JSON scene files")
	flag.Parse()

	// Create and start web server
	webServer := server.NewServer(*port, *sceneDir)

	log.Printf("Sphere Raytracer Web Server")
	log.Printf("Visit http://localhost:%d/api/scenes to list scenes", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
