package console

import (
	"fmt"
	"log"

	"github.com/josephlewis42/mithlsh/core/logger"
)

// EventFaults records faults in the event log.
type EventFaults struct {
	Events logger.EventRecorder
}

var _ FaultReporter = (*EventFaults)(nil)

func (f *EventFaults) ReportFault(context string, recovered interface{}, stack []byte) {
	log.Printf("%s: recovered from panic: %v", context, recovered)
	if f.Events == nil {
		return
	}

	err := f.Events.Record(&logger.Panic{
		Context:    fmt.Sprintf("%s: %v", context, recovered),
		Stacktrace: string(stack),
	})
	if err != nil {
		log.Printf("couldn't record panic: %v", err)
	}
}
