package utils

import (
	"bufio"
	"fmt"
	"os"
	"path"
	"strings"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

func AskForConfirmationDefaultYes(s string) bool {
	reader := bufio.NewReader(os.Stdin)

	fmt.Printf("%s [Y/n]: ", s)

	response, err := reader.ReadString('\n')
	if err != nil {
		log.Fatal(err)
	}

	switch strings.ToLower(strings.TrimSpace(response)) {
	case "y", "yes", "":
		return true
	default:
		return false
	}
}

// DumpOption writes opt as yaml to outputPath, creating the parent directory
// and asking before clobbering an existing file unless overwrite is set.
func DumpOption(opt interface{}, outputPath string, overwrite bool) {
	buffer, _ := yaml.Marshal(opt)

	parentPath := path.Dir(outputPath)
	if _, err := os.Stat(parentPath); os.IsNotExist(err) {
		if err := os.MkdirAll(parentPath, 0700); err != nil {
			log.Errorln("cannot create directory", parentPath)
			log.Exit(1)
		}
	}

	if !overwrite {
		if _, err := os.Stat(outputPath); !os.IsNotExist(err) {
			if !AskForConfirmationDefaultYes("configuration " + outputPath + " already exists, overwrite?") {
				log.Infoln("abort")
				return
			}
		}
	}

	log.Infoln("writing configuration to", outputPath)
	f, err := os.OpenFile(outputPath, os.O_CREATE|os.O_RDWR|os.O_TRUNC, 0600)
	if err != nil {
		panic("cannot open " + outputPath + ", check permissions")
	}
	defer func() { _ = f.Close() }()

	w := bufio.NewWriter(f)
	if _, err := w.Write(buffer); err != nil {
		log.Panicln("cannot write configuration", err)
	}
	_ = w.Flush()
}
