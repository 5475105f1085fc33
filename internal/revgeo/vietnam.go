package revgeo

//
// Local address synthesis for Vietnam
//

import (
	"strings"

	"github.com/lengocduc195/geovisit/internal/model"
	"github.com/lengocduc195/geovisit/internal/optional"
)

// SynthesizeVietnamAddress composes a locally-formatted address string
// for Vietnamese addresses, where the conventional reading order is
// street, ward, district, city, region. It returns none unless the
// country code indicates Vietnam and a street component exists.
//
// The segments are comma-joined in that fixed order and each segment
// is included only when present, e.g.:
//
//	12 Le Loi, Ben Nghe, District 1, Ho Chi Minh City, Ho Chi Minh
func SynthesizeVietnamAddress(addr model.AddressPartial) optional.Value[string] {
	if addr.CountryCode.UnwrapOr("") != "VN" || addr.Street.IsNone() {
		return optional.None[string]()
	}

	street := addr.Street.Unwrap()
	if number := addr.StreetNumber.UnwrapOr(""); number != "" {
		street = number + " " + street
	}

	segments := []string{street}
	for _, segment := range []optional.Value[string]{
		addr.Ward, addr.District, addr.City, addr.Region,
	} {
		if segment.IsSome() {
			segments = append(segments, segment.Unwrap())
		}
	}

	return optional.Some(strings.Join(segments, ", "))
}
