// Package mining classifies announcement titles as mining-related.
package mining

import "regexp"

// includeRe matches proof-of-work and mining vocabulary, including the
// common algorithm names seen in altcoin announcements.
var includeRe = regexp.MustCompile(`(?i)\bpow\b|proof.of.work|mining|miner|hashrate|hash.rate` +
	`|cpu.min|gpu.min|asic.resist|fair.launch|no.premine|block.reward` +
	`|mineable|mine?able` +
	`|RandomX|KawPow|ProgPoW|Equihash|Autolykos|kHeavyHash|CryptoNight` +
	`|MinotaurX|Verthash|FishHash|zkPoW|BeamHash|YesPoWer|SpectreX` +
	`|Ethash|\bScrypt\b|SHA.?256d?|Cuckoo|Blake3|Keccak.?256|Argon2` +
	`|stratum|solo.min|pool.min`)

// excludeRe filters out the frequent false positives: trading bots,
// DeFi products and token-sale announcements that mention mining terms.
var excludeRe = regexp.MustCompile(`(?i)trading|bot|assistant|DeFi|swap|lending|staking|NFT|token sale` +
	`|presale|IDO|IEO|launchpad|airdrop|generosity|charity`)

// IsMining reports whether a title looks like a mineable-coin announcement.
func IsMining(title string) bool {
	if excludeRe.MatchString(title) {
		return false
	}
	return includeRe.MatchString(title)
}
