package domain

// Reference is one row of a small enumeration (event type, playing format,
// pairing method, pairing app, checklist category, cost category). The
// enumerations grow by use through get-or-create lookups.
type Reference struct {
	ID   uint
	Name string
}

// Settings keys recognized by the engine. Unknown keys are preserved but
// ignored.
const (
	SettingTotalTables          = "total_tables_available"
	SettingSetupPadding         = "default_setup_padding_minutes"
	SettingBreakdownPadding     = "default_breakdown_padding_minutes"
	SettingWeekdayBefore6pmRate = "weekday_before_6pm_rate"
	SettingWeekdayAfter6pmRate  = "weekday_after_6pm_rate"
	SettingSaturdayRate         = "saturday_rate"
	SettingSundayRate           = "sunday_rate"
	SettingPublicHolidayRate    = "public_holiday_rate"
)
