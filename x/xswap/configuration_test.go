package xswap

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/iov-one/xswap"
	"github.com/iov-one/xswap/errors"
	"github.com/iov-one/xswap/store"
	"github.com/iov-one/xswap/xswaptest/assert"
)

func TestConfigurationValidate(t *testing.T) {
	cases := map[string]struct {
		conf      Configuration
		wantField string
	}{
		"valid": {
			conf: Configuration{ClaimWindow: 600, SettlementWindow: 1200},
		},
		"defaults": {
			conf: *DefaultConfiguration(),
		},
		"zero claim window": {
			conf:      Configuration{ClaimWindow: 0, SettlementWindow: 1200},
			wantField: "ClaimWindow",
		},
		"negative claim window": {
			conf:      Configuration{ClaimWindow: -1, SettlementWindow: 1200},
			wantField: "ClaimWindow",
		},
		"equal windows": {
			conf:      Configuration{ClaimWindow: 600, SettlementWindow: 600},
			wantField: "SettlementWindow",
		},
		"settlement before claim": {
			conf:      Configuration{ClaimWindow: 600, SettlementWindow: 300},
			wantField: "SettlementWindow",
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.conf.Validate()
			if tc.wantField == "" {
				assert.Nil(t, err)
				return
			}
			assert.FieldError(t, err, tc.wantField, errors.ErrInput)
		})
	}
}

func TestLoadConfiguration(t *testing.T) {
	db := store.MemStore()

	conf, err := LoadConfiguration(db)
	assert.Nil(t, err)
	assert.Equal(t, 10*time.Hour, conf.ClaimWindow.Duration())
	assert.Equal(t, 20*time.Hour, conf.SettlementWindow.Duration())

	err = SaveConfiguration(db, &Configuration{ClaimWindow: 600, SettlementWindow: 60})
	assert.IsErr(t, errors.ErrInput, err)

	assert.Nil(t, SaveConfiguration(db, &Configuration{ClaimWindow: 600, SettlementWindow: 1200}))
	conf, err = LoadConfiguration(db)
	assert.Nil(t, err)
	assert.Equal(t, &Configuration{ClaimWindow: 600, SettlementWindow: 1200}, conf)

	assert.Nil(t, db.Set([]byte("_c:xswap"), []byte{1, 2}))
	_, err = LoadConfiguration(db)
	assert.IsErr(t, errors.ErrModel, err)
}

func TestConfigurationGenesis(t *testing.T) {
	cases := map[string]struct {
		genesis string
		want    *Configuration
		wantErr *errors.Error
	}{
		"seconds": {
			genesis: `{"conf": {"xswap": {"claim_window": 600, "settlement_window": 1200}}}`,
			want:    &Configuration{ClaimWindow: 600, SettlementWindow: 1200},
		},
		"durations": {
			genesis: `{"conf": {"xswap": {"claim_window": "1h", "settlement_window": "2h"}}}`,
			want:    &Configuration{ClaimWindow: 3600, SettlementWindow: 7200},
		},
		"no configuration": {
			genesis: `{}`,
			want:    DefaultConfiguration(),
		},
		"configuration of another package": {
			genesis: `{"conf": {"cash": {}}}`,
			want:    DefaultConfiguration(),
		},
		"invalid windows": {
			genesis: `{"conf": {"xswap": {"claim_window": 600, "settlement_window": 600}}}`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var opts xswap.Options
			assert.Nil(t, json.Unmarshal([]byte(tc.genesis), &opts))

			db := store.MemStore()
			err := Initializer{}.FromGenesis(opts, db)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)

			got, err := LoadConfiguration(db)
			assert.Nil(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
