package admins

import (
	"net/http"
	"strings"
	"time"

	"github.com/BronksDEV/luxbrasil-sub000/database"
	"github.com/BronksDEV/luxbrasil-sub000/models"
	"github.com/BronksDEV/luxbrasil-sub000/utils"
)

type DailyGrowth struct {
	Day   string `json:"day"`
	Count *int64 `json:"count"`
}

type DashboardStats struct {
	TotalUsers          int64         `json:"total_users"`
	BannedUsers         int64         `json:"banned_users"`
	GrowthUsers         []DailyGrowth `json:"growth_users"`
	SpinsToday          int64         `json:"spins_today"`
	SpinsTotal          int64         `json:"spins_total"`
	PendingRedemptions  int64         `json:"pending_redemptions"`
	PendingReviews      int64         `json:"pending_reviews"`
	ConfirmedReferrals  int64         `json:"confirmed_referrals"`
	TotalReferrals      int64         `json:"total_referrals"`
	ReferralConversion  float64       `json:"referral_conversion"`
	CurrencyOutstanding int64         `json:"currency_outstanding"`
}

// GET /api/admin/dashboard
func GetDashboardStats(w http.ResponseWriter, r *http.Request) {
	var stats DashboardStats
	db := database.DB

	stats.GrowthUsers = make([]DailyGrowth, 0)

	db.Model(&models.User{}).Count(&stats.TotalUsers)
	db.Model(&models.User{}).Where("is_banned = ?", true).Count(&stats.BannedUsers)

	// Signups grouped per day over the last week.
	growthMap := map[string]int64{}
	rows, err := db.Model(&models.User{}).
		Select("DATE_FORMAT(created_at, '%W') as day, COUNT(*) as count").
		Where("created_at >= NOW() - INTERVAL 7 DAY").
		Group("DATE_FORMAT(created_at, '%W')").
		Rows()
	if err == nil {
		defer rows.Close()
		for rows.Next() {
			var day string
			var count int64
			if scanErr := rows.Scan(&day, &count); scanErr == nil {
				growthMap[strings.TrimSpace(day)] = count
			}
		}
	}
	for i := 6; i >= 0; i-- {
		d := time.Now().AddDate(0, 0, -i)
		dayName := d.Format("Monday")
		if val, ok := growthMap[dayName]; ok {
			v := val
			stats.GrowthUsers = append(stats.GrowthUsers, DailyGrowth{Day: dayName, Count: &v})
		} else {
			stats.GrowthUsers = append(stats.GrowthUsers, DailyGrowth{Day: dayName, Count: nil})
		}
	}

	db.Model(&models.SpinHistory{}).Count(&stats.SpinsTotal)
	db.Model(&models.SpinHistory{}).Where("created_at >= CURDATE()").Count(&stats.SpinsToday)

	db.Model(&models.SpinHistory{}).
		Where("status = ? AND prize_type IN ?", models.HistoryRequested, []string{models.PrizePhysical, models.PrizeMoney}).
		Count(&stats.PendingRedemptions)

	db.Model(&models.UserChallenge{}).
		Joins("JOIN challenges c ON c.id = user_challenges.challenge_id").
		Where("user_challenges.status = ? AND c.verification = ?", models.ChallengeInProgress, models.VerifyManual).
		Count(&stats.PendingReviews)

	db.Model(&models.Referral{}).Count(&stats.TotalReferrals)
	db.Model(&models.Referral{}).Where("confirmed_at IS NOT NULL").Count(&stats.ConfirmedReferrals)
	if stats.TotalReferrals > 0 {
		stats.ReferralConversion = utils.RoundFloat(float64(stats.ConfirmedReferrals)/float64(stats.TotalReferrals)*100, 2)
	}

	db.Model(&models.User{}).Select("COALESCE(SUM(currency_balance), 0)").Scan(&stats.CurrencyOutstanding)

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data:    stats,
	})
}
