package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/soapywu/pushkit/ios"
	"github.com/soapywu/pushkit/logger"
	"github.com/soapywu/pushkit/pbxproj"
)

func main() {
	if err := run("project.pbxproj", "."); err != nil {
		log.Fatal(err)
	}
}

// run adds the rich push extension to projectPath and writes the JSON dumps
// and the new project into outDir.
func run(projectPath, outDir string) error {
	project := pbxproj.NewPbxProject(projectPath)
	err := project.Parse()
	if err != nil {
		return err
	}
	dumpToFile := func(name string) error {
		file, err := os.OpenFile(filepath.Join(outDir, name), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}
		defer file.Close()
		return project.Dump(file)
	}

	if err := dumpToFile("OriginalProject.json"); err != nil {
		return err
	}

	ext := ios.NotificationServiceExtension("com.example.helloworld")
	result, err := ios.AddNotificationServiceExtension(project, ext, ios.WithLogger(logger.NewDefaultLogger()))
	if err != nil {
		return err
	}
	if result.Skipped {
		log.Printf("%s already present", ext.Name)
	}

	if err := dumpToFile("ModifiedProject.json"); err != nil {
		return err
	}

	return pbxproj.NewPbxWriter(project).Write(filepath.Join(outDir, "new"+filepath.Base(projectPath)))
}
