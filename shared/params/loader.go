package params

import (
	"io/ioutil"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

// LoadChainConfigFile load, convert hex values into valid param yaml format,
// unmarshal, and apply beacon chain config file. Values missing from the file
// keep the preset they were layered over (mainnet, or minimal when the file
// says so).
func LoadChainConfigFile(chainConfigFileName string) error {
	yamlFile, err := ioutil.ReadFile(chainConfigFileName) // #nosec G304
	if err != nil {
		return errors.Wrap(err, "could not read chain config file")
	}
	conf, err := UnmarshalConfig(yamlFile)
	if err != nil {
		return errors.Wrapf(err, "could not parse chain config file %s", chainConfigFileName)
	}
	log.Debugf("Config file values: %+v", conf)
	OverrideBeaconConfig(conf)
	return nil
}

// UnmarshalConfig parses yaml chain config bytes on top of the preset named
// inside them.
func UnmarshalConfig(yamlFile []byte) (*BeaconChainConfig, error) {
	// Default to using mainnet.
	conf := MainnetConfig().Copy()
	hasConfigName := false
	lines := strings.Split(string(yamlFile), "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, "CONFIG_NAME") {
			hasConfigName = true
		}
		if strings.HasPrefix(line, "PRESET_BASE: 'minimal'") ||
			strings.HasPrefix(line, `PRESET_BASE: "minimal"`) ||
			strings.HasPrefix(line, "PRESET_BASE: minimal") ||
			strings.HasPrefix(line, "# Minimal preset") {
			conf = MinimalSpecConfig().Copy()
		}
		if strings.HasPrefix(line, "PRESET_BASE") {
			lines[i] = ""
			continue
		}
		if !strings.HasPrefix(line, "#") && strings.Contains(line, "0x") {
			parts, err := ReplaceHexStringWithYAMLFormat(line)
			if err != nil {
				return nil, err
			}
			lines[i] = strings.Join(parts, "\n")
		}
	}
	yamlFile = []byte(strings.Join(lines, "\n"))
	if err := yaml.UnmarshalStrict(yamlFile, conf); err != nil {
		if _, ok := err.(*yaml.TypeError); !ok {
			return nil, err
		}
		log.WithError(err).Error("There were some issues parsing the config from a yaml file")
	}
	if !hasConfigName {
		conf.ConfigName = "devnet"
	}
	return conf, nil
}

// ReplaceHexStringWithYAMLFormat will replace hex strings that the yaml parser will understand.
func ReplaceHexStringWithYAMLFormat(line string) ([]string, error) {
	parts := strings.Split(line, "0x")
	value := strings.TrimSpace(parts[1])
	if idx := strings.Index(value, " "); idx >= 0 {
		value = value[:idx]
	}
	decoded, err := hexutil.Decode("0x" + value)
	if err != nil {
		return nil, errors.Wrapf(err, "could not decode hex value in line %q", line)
	}
	var fixed interface{}
	switch l := len(decoded); {
	case l == 1:
		fixedByte, err := yaml.Marshal(decoded[0])
		if err != nil {
			return nil, err
		}
		parts[0] += string(fixedByte)
		return parts[:1], nil
	case l > 1 && l <= 4:
		var arr [4]byte
		copy(arr[:], decoded)
		fixed = arr
	case l > 4 && l <= 8:
		var arr [8]byte
		copy(arr[:], decoded)
		fixed = arr
	case l > 8 && l <= 32:
		var arr [32]byte
		copy(arr[:], decoded)
		fixed = arr
	default:
		fixed = decoded
	}
	fixedByte, err := yaml.Marshal(fixed)
	if err != nil {
		return nil, err
	}
	parts[1] = string(fixedByte)
	return parts, nil
}
