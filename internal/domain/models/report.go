package models

import "time"

// SummaryReport is the weekly payroll and income snapshot persisted to MongoDB.
type SummaryReport struct {
	WeekStart    time.Time      `bson:"week_start" json:"week_start"`
	WeekEnd      time.Time      `bson:"week_end" json:"week_end"`
	Trips        int            `bson:"trips" json:"trips"`
	Tons         float64        `bson:"tons" json:"tons"`
	Income       float64        `bson:"income" json:"income"`
	LaborCost    float64        `bson:"labor_cost" json:"labor_cost"`
	DriverCost   float64        `bson:"driver_cost" json:"driver_cost"`
	Expenses     float64        `bson:"expenses" json:"expenses"`
	Net          float64        `bson:"net" json:"net"`
	UnpaidDebts  float64        `bson:"unpaid_debts" json:"unpaid_debts"`
	EmployeePays []EmployeeWage `bson:"employee_pays" json:"employee_pays"`
	CreatedAt    time.Time      `bson:"created_at" json:"created_at"`
}

// EmployeeWage is one employee's earnings line inside a SummaryReport.
type EmployeeWage struct {
	EmployeeID string  `bson:"employee_id" json:"employee_id"`
	Name       string  `bson:"name" json:"name"`
	Wage       float64 `bson:"wage" json:"wage"`
	DriverPay  float64 `bson:"driver_pay" json:"driver_pay"`
}
