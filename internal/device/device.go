// Package device implements the device context collector, which reads
// locally available signals only: the client descriptor string (a
// user-agent-equivalent) and the ambient timezone. Collection is pure
// and synchronous and cannot fail.
//
// Browser and OS detection use ordered rule tables evaluated in a
// fixed, documented order. The order matters because descriptor
// strings impersonate each other (e.g., every Chrome descriptor also
// contains "Safari"), so the first matching rule wins.
package device

import (
	"github.com/lengocduc195/geovisit/internal/model"
	"github.com/lengocduc195/geovisit/internal/timectx"
	"github.com/mileusna/useragent"
)

// Unknown is the value we assign to fields we could not classify.
const Unknown = "Unknown"

// Collector collects the device context.
//
// The zero value is valid and uses the system clock.
type Collector struct {
	// Clock is the OPTIONAL clock to use.
	Clock model.Clock
}

// Collect classifies the given client descriptor and captures the
// ambient timezone. It always returns a fully-populated partial.
func (c *Collector) Collect(clientDescriptor string) model.DevicePartial {
	now := model.ValidClockOrDefault(c.Clock).Now()
	browser, browserVersion := classifyBrowser(clientDescriptor)
	osName, osVersion := classifyOS(clientDescriptor)
	return model.DevicePartial{
		DeviceType:     classifyDeviceType(clientDescriptor),
		Browser:        browser,
		BrowserVersion: browserVersion,
		OS:             osName,
		OSVersion:      osVersion,
		Bot:            useragent.Parse(clientDescriptor).Bot,
		Timezone:       timectx.ZoneName(now),
		TimezoneOffset: timectx.OffsetHours(now),
	}
}
