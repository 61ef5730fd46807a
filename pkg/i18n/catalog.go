package i18n

// Message keys shared with the packages that build responses.
const (
	KeyInvalidTimePeriod = "invalid_parameter.time_period"
	KeyViewRecorded      = "story.view_recorded"
	KeyStoryCompleted    = "story.complete"
)

var catalog = map[string]map[string]string{
	LocaleEnglish: {
		"not_found.story":    "Story not found.",
		"not_found.user":     "User not found.",
		"not_found.category": "Category not found.",
		"not_found.page":     "Page not found.",

		KeyInvalidTimePeriod: `Invalid time_period parameter. Only "week" or "month" are accepted.`,

		"story.approve.notified":     "Story approved and a notification was sent to user_id: {0}",
		"story.approve.not_notified": "Story approved, but no notification was sent",
		"story.disable.notified":     "Story disabled and a notification was sent to user_id: {0}",
		"story.disable.not_notified": "Story disabled, no notification was sent",
		"story.reject.notified":      "Story rejected and a notification was sent to user_id: {0}",
		"story.reject.not_notified":  "Story rejected, no notification was sent",
		KeyStoryCompleted:            "The story has been marked as complete",
		KeyViewRecorded:              "View recorded",

		"notification.approve.title":   "Story approval request",
		"notification.approve.message": "Your story {0} has been approved!",
		"notification.disable.title":   "Notice!",
		"notification.disable.message": "Your story {0} has been disabled due to prolonged inactivity!",
		"notification.reject.title":    "Story approval request",
		"notification.reject.message":  "Your story {0} was rejected for insufficient requirements",
	},
	LocaleVietnamese: {
		"not_found.story":    "Truyện không tồn tại.",
		"not_found.user":     "Người dùng không tồn tại.",
		"not_found.category": "Thể loại không tồn tại.",
		"not_found.page":     "Không tìm thấy trang.",

		KeyInvalidTimePeriod: `Tham số time_period không hợp lệ. Chỉ chấp nhận "week" hoặc "month".`,

		"story.approve.notified":     "Phê duyệt thành công và thông báo đã được gửi đến user_id: {0}",
		"story.approve.not_notified": "Phê duyệt thành công nhưng không tìm thấy tác giả",
		"story.disable.notified":     "Vô hiệu hóa truyện thành công và thông báo đã được gửi đến user_id: {0}",
		"story.disable.not_notified": "Vô hiệu hóa truyện thành công",
		"story.reject.notified":      "Hủy phê truyện thành công và thông báo đã được gửi đến user_id: {0}",
		"story.reject.not_notified":  "Hủy phê truyện thành công",
		KeyStoryCompleted:            "Bạn đã hoàn thành truyện",
		KeyViewRecorded:              "Xem truyện thành công",

		"notification.approve.title":   "Yêu cầu duyệt truyện",
		"notification.approve.message": "Truyện {0} của bạn đăng đã được phê duyệt!",
		"notification.disable.title":   "Thông báo !",
		"notification.disable.message": "Truyện {0} của bạn đã được vô hiệu hóa do không cập nhật trong thời gian dài!",
		"notification.reject.title":    "Yêu cầu duyệt truyện",
		"notification.reject.message":  "Truyện {0} của bạn đã bị từ chối phê duyệt do không đủ yêu cầu",
	},
}
