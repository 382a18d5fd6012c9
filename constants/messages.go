package constants

// 사용자 인터페이스 메시지
const (
	// 체크인 관련
	MsgCheckInSuccess  = "%s님 체크인되었습니다."
	MsgCheckOutSuccess = "%s님 체크아웃되었습니다."
	MsgSessionStarted  = "세션이 시작되었습니다! 체크인 인원: %d명"

	// 대기열 관련
	MsgQueueTitle     = "📋 %s 대기열"
	MsgQueueEmpty     = "대기 중인 참가자가 없습니다."
	MsgSkipTurnSwap   = "다음 대기자와 순서를 교체했습니다."
	MsgSkipTurnToEnd  = "대기열 맨 뒤로 이동했습니다."
	MsgRecentTeammate = "⚠️ 최근 같은 팀이었던 조합이 포함되어 있습니다."

	// 경기 관련
	MsgMatchRecorded = "경기 결과가 기록되었습니다. (%s팀 승리, ±%d점)"
	MsgMatchQueued   = "다음 경기가 예약되었습니다."
	MsgCourtCleared  = "%d번 코트가 비워졌습니다."

	// 정산 관련
	MsgSessionEnded     = "세션이 종료되었습니다. 총 비용: %d원"
	MsgBillExported     = "정산 내역이 시트에 기록되었습니다."
	MsgBillAlreadySet   = "이미 정산이 완료된 세션입니다."

	// 충돌/오류 관련
	MsgConflictNotice  = "다른 기기에서 먼저 변경되었습니다. 화면을 새로고침해주세요."
	MsgUnexpectedError = "예상치 못한 오류가 발생했습니다."

	// 명령어 사용법
	MsgPong           = "pong! 🏓"
	MsgAssignUsage    = "사용법: !배정 <코트번호> <참가자1> <참가자2> [참가자3] [참가자4]"
	MsgResultUsage    = "사용법: !결과 <코트번호> <승리팀(1|2)>"
	MsgSuggestUsage   = "사용법: !추천 <코트번호>"
	MsgEndUsage       = "사용법: !종료 <셔틀콕수> <셔틀콕단가> <코트대여료> <EQUAL|MATCHES>"
	MsgSessionMissing = "진행 중인 세션이 없습니다."
)

// HelpMessage 도움말 메시지
const HelpMessage = "**🏸 SmashX 명령어**\n" +
	"`!체크인` - 대기열에 줄서기 / 빠지기\n" +
	"`!대기열` - 현재 대기열 보기\n" +
	"`!추천 <코트>` - 다음 경기 4인 조합 추천\n" +
	"`!배정 <코트> <참가자...>` - 코트에 경기 배정\n" +
	"`!결과 <코트> <1|2>` - 경기 결과 기록\n" +
	"`!양보` - 대기 순서 한 칸 양보\n" +
	"`!종료 <셔틀콕수> <단가> <코트비> <분배방식>` - 세션 종료 및 정산\n" +
	"`!ping` - 응답 확인"
