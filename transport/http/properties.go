package http

import "github.com/relaywire/relay"

var (
	hmacScopeKey             struct{}
	hmacRegionKey            struct{}
	hmacIsUnsignedPayloadKey struct{}
)

// GetHMACScope gets the signing scope name (e.g. a service name) from
// Properties.
func GetHMACScope(p *relay.Properties) (string, bool) {
	v, ok := p.Get(hmacScopeKey).(string)
	return v, ok
}

// SetHMACScope sets the signing scope name on Properties.
func SetHMACScope(p *relay.Properties, name string) {
	p.Set(hmacScopeKey, name)
}

// GetHMACRegion gets the signing region component from Properties.
func GetHMACRegion(p *relay.Properties) (string, bool) {
	v, ok := p.Get(hmacRegionKey).(string)
	return v, ok
}

// SetHMACRegion sets the signing region component on Properties.
func SetHMACRegion(p *relay.Properties, region string) {
	p.Set(hmacRegionKey, region)
}

// GetIsUnsignedPayload gets whether the payload is unsigned from Properties.
func GetIsUnsignedPayload(p *relay.Properties) (bool, bool) {
	v, ok := p.Get(hmacIsUnsignedPayloadKey).(bool)
	return v, ok
}

// SetIsUnsignedPayload sets whether the payload is unsigned on Properties.
func SetIsUnsignedPayload(p *relay.Properties, isUnsignedPayload bool) {
	p.Set(hmacIsUnsignedPayloadKey, isUnsignedPayload)
}
