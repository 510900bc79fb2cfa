package seeder

// DefaultSkills is used by `skillctl seed` when no file is given.
var DefaultSkills = []SeedSkill{
	{Name: "Go", Category: "Programming Language", Proficiency: 7},
	{Name: "TypeScript", Category: "Programming Language", Proficiency: 6},
	{Name: "React", Category: "Frontend", Proficiency: 6},
	{Name: "PostgreSQL", Category: "Database", Proficiency: 5},
	{Name: "Redis", Category: "Database", Proficiency: 4},
	{Name: "Docker", Category: "DevOps", Proficiency: 5},
}
