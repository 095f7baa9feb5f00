package config

import (
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// GenerateHCL renders a config as formatted HCL, used to emit a
// starter config file.
func GenerateHCL(cfg *Config) []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	body.SetAttributeValue("schema_version", cty.StringVal(cfg.SchemaVersion))
	body.SetAttributeValue("log_level", cty.StringVal(cfg.LogLevel))

	if cfg.Engine != nil {
		b := body.AppendNewBlock("engine", nil).Body()
		if cfg.Engine.NFTPath != "" {
			b.SetAttributeValue("nft_path", cty.StringVal(cfg.Engine.NFTPath))
		}
		b.SetAttributeValue("handles", cty.BoolVal(cfg.Engine.Handles))
		b.SetAttributeValue("numeric", cty.BoolVal(cfg.Engine.Numeric))
		if cfg.Engine.Stateless {
			b.SetAttributeValue("stateless", cty.BoolVal(true))
		}
		if cfg.Engine.Terse {
			b.SetAttributeValue("terse", cty.BoolVal(true))
		}
	}

	if cfg.Audit != nil {
		b := body.AppendNewBlock("audit", nil).Body()
		b.SetAttributeValue("enabled", cty.BoolVal(cfg.Audit.Enabled))
		if cfg.Audit.DBPath != "" {
			b.SetAttributeValue("db_path", cty.StringVal(cfg.Audit.DBPath))
		}
		b.SetAttributeValue("retention_days", cty.NumberIntVal(int64(cfg.Audit.RetentionDays)))
	}

	if cfg.Exporter != nil {
		b := body.AppendNewBlock("exporter", nil).Body()
		b.SetAttributeValue("enabled", cty.BoolVal(cfg.Exporter.Enabled))
		b.SetAttributeValue("listen", cty.StringVal(cfg.Exporter.Listen))
		b.SetAttributeValue("interval_seconds", cty.NumberIntVal(int64(cfg.Exporter.IntervalSeconds)))
	}

	return f.Bytes()
}
