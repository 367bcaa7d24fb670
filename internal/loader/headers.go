package loader

import "opsreport/internal/report"

// Built-in header maps for the localized exports each role usually
// arrives in. Config-level header_map entries override these, so a
// renamed upstream column is a config change, not a code change.
var defaultHeaderMaps = map[report.Role]map[string]string{
	report.RolePrimary: {
		"日期":    report.ColDate,
		"渠道":    report.ColChannel,
		"首充人数":  report.ColFirstDepositCount,
		"充值人数":  report.ColDepositCount,
	},
	report.RoleProductMetrics: {
		"日期":     report.ColDate,
		"新增用户数":  "new_users",
		"充值人数":   "depositors",
		"充值金额":   "deposit_amount",
		"提现金额":   "withdrawal_amount",
		"首充人数":   "first_deposit_count",
		"首充金额":   "first_deposit_amount",
		"首充率":    "first_deposit_rate_pct",
		"首充毛利率":  "first_deposit_profit_rate_pct",
		"首充ARPPU": "first_deposit_arppu",
		"新增付费人数": "new_payer_count",
		"新增充值金额": "new_deposit_amount",
		"新增付费率":  "new_payer_rate_pct",
		"老用户付费人数": "returning_payer_count",
		"老用户充值金额": "returning_deposit_amount",
		"老用户付费率":  "returning_payer_rate_pct",
		"老用户ARPPU": "returning_arppu",
		"老用户毛利率":  "returning_profit_rate_pct",
		"ARPPU":    "arppu",
	},
	report.RoleRetention: {
		"日期":     report.ColDate,
		"来源渠道":   report.ColSourceChannel,
		"次日复充率":  "redeposit_d1_pct",
		"3日复充率":  "redeposit_d3_pct",
		"7日复充率":  "redeposit_d7_pct",
		"15日复充率": "redeposit_d15_pct",
		"30日复充率": "redeposit_d30_pct",
	},
	report.RoleCost: {
		"日期": report.ColDate,
		"合计": report.ColTotalCost,
	},
}

// headerMapFor merges the built-in map for a role with config-level
// overrides; overrides win on conflicts.
func headerMapFor(role report.Role, overrides map[string]string) map[string]string {
	base := defaultHeaderMaps[role]
	out := make(map[string]string, len(base)+len(overrides))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}
