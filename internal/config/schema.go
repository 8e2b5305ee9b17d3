package config

import "github.com/santhosh-tekuri/jsonschema/v5"

const schemaURL = "craftmine://config.schema.json"

const schemaSource = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "chunk_size":      {"type": "integer", "minimum": 4, "maximum": 128},
    "seed":            {"type": "integer"},
    "workers":         {"type": "integer", "minimum": 1, "maximum": 256},
    "render_distance": {"type": "integer", "minimum": 0},
    "search_radius":   {"type": "integer", "minimum": 0},
    "max_chunks":      {"type": "integer", "minimum": 1},
    "terrain": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "base_height": {"type": "number"},
        "amplitude":   {"type": "number", "minimum": 0},
        "scale":       {"type": "number", "exclusiveMinimum": 0},
        "octaves":     {"type": "integer", "minimum": 1, "maximum": 8},
        "sea_level":   {"type": "integer"},
        "tree_chance": {"type": "number", "minimum": 0, "maximum": 1}
      }
    },
    "log": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "level":       {"type": "string", "enum": ["debug", "info", "warn", "error", "dpanic", "panic", "fatal"]},
        "development": {"type": "boolean"}
      }
    },
    "window": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "width":  {"type": "integer", "minimum": 1},
        "height": {"type": "integer", "minimum": 1}
      }
    }
  }
}`

var schema = jsonschema.MustCompileString(schemaURL, schemaSource)
