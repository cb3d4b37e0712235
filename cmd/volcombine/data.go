package main

import (
	"volcombine/conf"
	"volcombine/infra/observe/log/staticLog"
	"volcombine/quant/volatility/harfeature"
)

func loadTable(c *conf.Config) (*harfeature.Panel, *harfeature.Table, error) {
	opt := harfeature.LoadOptions{
		DateColumn: c.Data.DateColumn,
		DateLayout: c.Data.DateLayout,
	}
	for i, s := range c.Data.Series {
		opt.Columns[i] = s.Column
		opt.Names[i] = s.Name
	}
	p, err := harfeature.LoadCSVFile(c.Data.Path, opt)
	if err != nil {
		return nil, nil, err
	}
	w := harfeature.Windows{Daily: c.Features.Daily, Weekly: c.Features.Weekly, Monthly: c.Features.Monthly}
	tbl, err := harfeature.Build(p, w, c.WalkForward.Horizons)
	if err != nil {
		return nil, nil, err
	}
	staticLog.Log.Infof("loaded %s: %d dates, %d feature rows (%d dropped)",
		c.Data.Path, p.Len(), tbl.Len(), tbl.Dropped())
	return p, tbl, nil
}
