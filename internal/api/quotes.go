package api

// quotes rotate at random on the history page
var quotes = []string{
	"Every day may not be good, but there is something good in every day.",
	"You are stronger than you think.",
	"Progress, not perfection.",
	"Small steps every day lead to big changes.",
	"You have overcome challenges before, you can do it again.",
	"Your feelings are valid. Take it one day at a time.",
	"Celebrate your wins, no matter how small.",
	"You are not alone. Reach out if you need support.",
	"Rest is productive, too.",
	"Be gentle with yourself.",
	"The only way to do great work is to love what you do.",
	"Believe you can and you're halfway there.",
	"It's okay to not be okay.",
	"Your mental health is a priority.",
	"You are worthy of love and respect.",
}
