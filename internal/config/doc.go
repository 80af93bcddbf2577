// Package config persists divelink's user state between runs.
//
// The registry is a YAML file in the platform config directory. It stores
// per-device metadata keyed by serial number, most importantly the
// fingerprint of the newest downloaded dive: feeding that fingerprint back
// into the next session makes downloads incremental, so a device with no
// new dives answers with an empty dump.
//
// Nothing secret is stored; the file only holds device bookkeeping and
// preferences.
package config
