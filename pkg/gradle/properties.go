// Package gradle reads the parts of a Gradle build the downloader needs:
// gradle.properties values and the projects included by the settings file.
package gradle

import (
	"github.com/glorpus-work/artifactswap/pkg/errors"
	"github.com/magiconair/properties"
)

// PropertiesProvider looks up values in a gradle.properties file.
type PropertiesProvider struct {
	path  string
	props *properties.Properties
}

// LoadProperties reads a gradle.properties file. ${...} references are
// kept verbatim since Gradle does not expand them either.
func LoadProperties(path string) (*PropertiesProvider, error) {
	loader := &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	props, err := loader.LoadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load %s", path)
	}
	return &PropertiesProvider{path: path, props: props}, nil
}

// Get returns the value of key. A missing key is an error.
func (p *PropertiesProvider) Get(key string) (string, error) {
	v, ok := p.props.Get(key)
	if !ok {
		return "", errors.Wrapf(errors.ErrPropertyNotSet, "%s must be set in %s", key, p.path)
	}
	return v, nil
}
