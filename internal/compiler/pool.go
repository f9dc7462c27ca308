package compiler

import (
	"iismap/internal/diagnostic"
	"iismap/internal/tables"
	"iismap/internal/vocab"
	"iismap/internal/xmltree"
)

const identityOther = "other"

func (p *pass) webAppPool(el *xmltree.Element, sc scope) string {
	v := p.validate(el)
	loc := p.loc(el)
	id := p.identify(v, tables.TableAppPool, prefixAppPool, v.StringOr("Name", ""))

	var identity *int

	if name := v.String("Identity"); name != nil {
		if n, ok := vocab.Identity.Value(*name); ok {
			identity = &n
		}
	}

	user := v.String("User")

	switch isOther := v.StringOr("Identity", "") == identityOther; {
	case isOther && user == nil:
		if _, given := el.Attr("User"); !given {
			p.diags.Add(diagnostic.ExpectedAttributeWhen(loc, el.Name, "User", "Identity", identityOther))
		}
	case !isOther && user != nil:
		p.diags.Add(diagnostic.IllegalAttributeWithValue(loc, el.Name, "User", "Identity", identityOther))
		user = nil
	}

	var cpuMon *string

	if pct := v.Int("CpuMon"); pct != nil {
		mon := vocab.CPUMon{Percent: *pct, Refresh: v.Int("RefreshCpu")}

		if action := v.String("CpuAction"); action != nil {
			if n, ok := vocab.CPUAction.Value(*action); ok {
				mon.Action = &n
			}
		}

		s := mon.String()
		cpuMon = &s
	} else {
		for _, dependent := range []string{"RefreshCpu", "CpuAction"} {
			if _, given := el.Attr(dependent); given {
				p.diags.Add(diagnostic.IllegalAttributeWithout(loc, el.Name, dependent, "CpuMon"))
			}
		}
	}

	var times []string

	for _, t := range p.children(el, sc)["RecycleTime"] {
		if t != "" {
			times = append(times, t)
		}
	}

	var recycleTimes *string

	if len(times) > 0 {
		s := vocab.JoinRecycleTimes(times)
		recycleTimes = &s
	}

	rec := tables.AppPool{
		AppPool:               id,
		Name:                  v.String("Name"),
		Component:             optional(sc.component),
		Attributes:            identity,
		User:                  user,
		RecycleMinutes:        v.Int("RecycleMinutes"),
		RecycleRequests:       v.Int("RecycleRequests"),
		RecycleTimes:          recycleTimes,
		IdleTimeout:           v.Int("IdleTimeout"),
		QueueLimit:            v.Int("QueueLimit"),
		CPUMon:                cpuMon,
		MaxProc:               v.Int("MaxWorkerProcesses"),
		VirtualMemory:         v.Int("VirtualMemory"),
		PrivateMemory:         v.Int("PrivateMemory"),
		ManagedRuntimeVersion: v.String("ManagedRuntimeVersion"),
		ManagedPipelineMode:   v.String("ManagedPipelineMode"),
	}

	if !p.insert(rec, el) {
		return ""
	}

	return id
}

// recycleTime folds into the enclosing pool's RecycleTimes column and
// returns its value rather than a row key.
func (p *pass) recycleTime(el *xmltree.Element) string {
	return p.validate(el).StringOr("Value", "")
}
