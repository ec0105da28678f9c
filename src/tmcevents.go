package basenji

/*------------------------------------------------------------------
 *
 * Purpose:	ALERT-C event catalogue for TMC reports.
 *
 * Description:	The event code table is large and revision-managed
 *		separately from the program, so it lives in
 *		tmc_events.yaml and is read at startup rather than
 *		compiled in.  Without the file, events render as
 *		"event <code>" and everything else keeps working.
 *
 *------------------------------------------------------------------*/

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var tmcEvents map[int]string

var tmcEventsSearchLocations = []string{
	"tmc_events.yaml",         // Current working directory
	"data/tmc_events.yaml",    // Repo layout
	"../data/tmc_events.yaml", // Running from cmd/ during development
	"/usr/local/share/basenji/tmc_events.yaml",
	"/usr/share/basenji/tmc_events.yaml",
}

// TmcEventsInit loads the event catalogue.  Called once at startup;
// a missing file is not an error.
func TmcEventsInit() error {
	var data []byte
	for _, location := range tmcEventsSearchLocations {
		var d, err = os.ReadFile(location)
		if err == nil {
			data = d
			break
		}
	}
	if data == nil {
		return nil
	}

	var parsed struct {
		Events map[int]string `yaml:"events"`
	}
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("tmc_events.yaml: %w", err)
	}
	tmcEvents = parsed.Events
	return nil
}

// tmcEventName renders an event code, with the catalogue text when
// available.
func tmcEventName(code int) string {
	if name, ok := tmcEvents[code]; ok {
		return name
	}
	return fmt.Sprintf("event %d", code)
}
